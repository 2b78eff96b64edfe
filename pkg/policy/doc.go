/*
Package policy resolves visa facts for a directional pair of countries.

The bilateral table is read-only once built: it is loaded at startup (from the
embedded defaults or a YAML/JSON override file) and never mutated afterwards, so a
Table can be shared by any number of goroutines without locking.

Pairs are directional. (canada, japan) and (japan, canada) are distinct keys and
need not agree; a pair that is absent resolves to DefaultPolicy, which always
requires a visa.
*/
package policy
