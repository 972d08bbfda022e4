// Package domain holds the core types shared between layers.
package domain

import "fmt"

// Domain is a legal domain label. The set is closed: collections, keyword
// maps, and hints are all validated against it at load time.
type Domain string

const (
	// IPC covers the Indian Penal Code (criminal law).
	IPC Domain = "ipc"
	// Consumer covers consumer protection law.
	Consumer Domain = "consumer"
	// CrPC covers the Code of Criminal Procedure.
	CrPC Domain = "crpc"
	// Family covers family and matrimonial law.
	Family Domain = "family"
	// Property covers property and land law.
	Property Domain = "property"
	// ITAct covers the Information Technology Act (cyber law).
	ITAct Domain = "it_act"

	// Global is the aggregate collection built from every domain's records.
	Global Domain = "global"
)

// Domains lists every legal domain in declaration order. This order is the
// canonical tie-break order for classification and search ranking; Global is
// excluded because it is derived, not declared.
var Domains = []Domain{IPC, Consumer, CrPC, Family, Property, ITAct}

// DisplayName returns the human-readable name used in formatted responses.
func (d Domain) DisplayName() string {
	switch d {
	case IPC:
		return "Indian Penal Code (Criminal Law)"
	case Consumer:
		return "Consumer Protection Law"
	case CrPC:
		return "Criminal Procedure Code"
	case Family:
		return "Family Law"
	case Property:
		return "Property Law"
	case ITAct:
		return "Information Technology Act (Cyber Law)"
	case Global:
		return "General Legal Corpus"
	default:
		return string(d)
	}
}

// IsValid reports whether d is a declared legal domain (Global excluded).
func (d Domain) IsValid() bool {
	for _, known := range Domains {
		if d == known {
			return true
		}
	}
	return false
}

// Rank returns the declaration-order position of d, used for deterministic
// tie-breaking. Unknown domains and Global sort last.
func (d Domain) Rank() int {
	for i, known := range Domains {
		if d == known {
			return i
		}
	}
	return len(Domains)
}

// ParseDomain validates a domain label, folding common aliases the UI sends.
func ParseDomain(s string) (Domain, error) {
	switch s {
	case "it", "cyber", "cyber_law", "it act":
		return ITAct, nil
	}
	d := Domain(s)
	if !d.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
	return d, nil
}
