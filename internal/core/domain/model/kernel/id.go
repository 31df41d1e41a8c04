package kernel

import (
	"fmt"

	"restock/internal/pkg/errs"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IDLength is the length of the textual form of an identifier.
const IDLength = 24

// ErrIDIsNotConstructed indicates that an ID was not initialized through one of its constructors.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID or IDFromHex")

// ID is the identifier of every entity the service touches: stores, suppliers,
// supplier routes, products and restock orders. Its textual form is 24 hexadecimal
// characters. It wraps primitive.ObjectID so the same value can be stored in MongoDB
// natively and as char(24) in PostgreSQL.
//
// The zero value is invalid. An all-zero hexadecimal identifier is valid once parsed.
type ID struct {
	id            primitive.ObjectID
	isConstructed bool
}

// NewID generates a fresh identifier.
func NewID() ID {
	return ID{id: primitive.NewObjectID(), isConstructed: true}
}

// IDFromHex parses the 24 character hexadecimal form.
//
// Example:
//
//	storeID, err := kernel.IDFromHex("64b7f0c2a1b2c3d4e5f60718")
//	if err != nil {
//	    return fmt.Errorf("invalid store ID: %w", err)
//	}
func IDFromHex(s string) (ID, error) {
	if len(s) != IDLength {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id",
			fmt.Errorf("%q must be %d hexadecimal characters", s, IDLength))
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%q is not hexadecimal: %w", s, err))
	}
	return ID{id: oid, isConstructed: true}, nil
}

// MustIDFromHex is IDFromHex for literals known to be valid. It panics otherwise.
func MustIDFromHex(s string) ID {
	id, err := IDFromHex(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IDFromObjectID wraps an ObjectID decoded by the MongoDB driver.
func IDFromObjectID(oid primitive.ObjectID) ID {
	return ID{id: oid, isConstructed: true}
}

// IsValidIDHex reports whether s is a well formed identifier.
func IsValidIDHex(s string) bool {
	_, err := IDFromHex(s)
	return err == nil
}

// String returns the lowercase 24 character hexadecimal form.
func (i ID) String() string {
	return i.id.Hex()
}

// ObjectID returns the underlying driver value.
func (i ID) ObjectID() primitive.ObjectID {
	return i.id
}

func (i ID) IsEqual(other ID) bool {
	return i.id == other.id
}

// Validate returns ErrIDIsNotConstructed for the zero value.
func (i ID) Validate() error {
	if !i.isConstructed {
		return ErrIDIsNotConstructed
	}
	return nil
}

// MarshalText encodes the hexadecimal form, so IDs serialize as JSON strings.
func (i ID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

func (i *ID) UnmarshalText(text []byte) error {
	parsed, err := IDFromHex(string(text))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
