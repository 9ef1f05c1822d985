// Package dataset loads the Smithsonian volcano table and derives the
// three-class modeling label. The loader performs a single fetch attempt
// and validates the schema before anything downstream runs.
package dataset

import (
	"strings"
)

// Class is the derived volcano type used as the modeling target.
type Class int

// The three target classes.
const (
	Stratovolcano Class = iota
	Shield
	Other
)

// NumClasses is the number of target classes.
const NumClasses = 3

// String returns the class label.
func (c Class) String() string {
	switch c {
	case Stratovolcano:
		return "Stratovolcano"
	case Shield:
		return "Shield"
	default:
		return "Other"
	}
}

// ClassNames lists the class labels in index order.
func ClassNames() []string {
	return []string{Stratovolcano.String(), Shield.String(), Other.String()}
}

// DeriveClass maps the free-text primary volcano type onto a Class.
// The rule is evaluated in order with first match winning: a type
// containing "Stratovolcano" is Stratovolcano even if it also contains
// "Shield". Everything without either substring is Other. The ordering
// is a policy choice and must stay fixed for reproducibility.
func DeriveClass(primaryType string) Class {
	switch {
	case strings.Contains(primaryType, "Stratovolcano"):
		return Stratovolcano
	case strings.Contains(primaryType, "Shield"):
		return Shield
	default:
		return Other
	}
}

// Record is one volcano row projected down to the modeling columns.
// Number identifies the volcano and is excluded from the feature set;
// it survives so predictions can be joined back to coordinates.
type Record struct {
	Number          int
	Name            string
	Country         string
	Latitude        float64
	Longitude       float64
	Elevation       float64
	TectonicSetting string
	MajorRock       string
	PrimaryType     string
	Type            Class
}
