package domain

// Document types emitted by the requirements engine, in presentation order.
const (
	DocPassport           = "Passport"
	DocVisa               = "Visa"
	DocTravelInsurance    = "Travel Insurance"
	DocReturnTicket       = "Return/Onward Ticket"
	DocFinancialProof     = "Financial Proof"
	DocAccommodationProof = "Accommodation Proof"
	DocBusinessInvitation = "Business Invitation Letter"
	DocStudentPermit      = "Student Visa/Permit"
	DocAcceptanceLetter   = "Acceptance Letter"
)

// Field names of the tool/request contract. They are shared by the MCP, HTTP and CLI adapters.
const (
	FieldFromCountry  = "from_country"
	FieldToCountry    = "to_country"
	FieldTripDuration = "trip_duration"
	FieldTripPurpose  = "trip_purpose"
)
