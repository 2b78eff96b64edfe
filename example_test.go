package passage_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aretw0/passage"
)

// ExampleService_GetRequirements shows a visa-free trip and the documents it still needs.
func ExampleService_GetRequirements() {
	svc, err := passage.New()
	if err != nil {
		log.Fatal(err)
	}

	res := svc.GetRequirements(context.Background(), "Canada", "Japan", 10, "tourism")
	for _, doc := range res.Report.RequiredDocuments {
		fmt.Println(doc.DocumentType)
	}
	fmt.Println("visa needed:", res.Report.Summary.VisaNeeded)
	fmt.Println("max stay:", *res.Report.VisaRequirements.MaxStay)

	// Output:
	// Passport
	// Return/Onward Ticket
	// Financial Proof
	// Accommodation Proof
	// visa needed: false
	// max stay: 90 days
}

// ExampleService_GetRequirements_invalidDuration shows the single-field error object.
func ExampleService_GetRequirements_invalidDuration() {
	svc, _ := passage.New()

	res := svc.GetRequirements(context.Background(), "Canada", "Japan", "abc", "tourism")
	out, _ := json.Marshal(res)
	fmt.Println(string(out))

	// Output:
	// {"error":"invalid trip_duration \"abc\": must be a whole number of days"}
}
