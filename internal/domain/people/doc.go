// Package people holds the registry's aggregates and value objects.
//
// Value objects are built only through validating constructors, so a Cpf,
// Cnpj, EmailAddress, PhoneNumber or Address in hand is always well formed.
// Person is a closed variant: *Individual and *LegalEntity are its only
// implementations. Aggregates never read the wall clock; timestamps are
// applied through Touch by the persistence layer.
package people
