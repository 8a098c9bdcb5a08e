// Package registry defines the data model for generator profile entries.
package registry

// ConfigExtension is the file extension appended to blob paths built from a
// profile's owner and name.
const ConfigExtension = ".yml"

// Profile is one generator profile record. The Gogen field is the unique,
// immutable identity. At most one of S3Path and GistID is ever stored; a
// write that sets S3Path strips any GistID. Empty string values are never
// persisted: the omitempty tags drop them at marshal time, so an empty field
// on write means "unset", never "set to empty".
type Profile struct {
	Gogen       string `json:"gogen" dynamodbav:"gogen"`
	Name        string `json:"name,omitempty" dynamodbav:"name,omitempty"`
	Description string `json:"description,omitempty" dynamodbav:"description,omitempty"`
	Notes       string `json:"notes,omitempty" dynamodbav:"notes,omitempty"`
	Owner       string `json:"owner,omitempty" dynamodbav:"owner,omitempty"`
	SampleEvent string `json:"sampleEvent,omitempty" dynamodbav:"sampleEvent,omitempty"`
	Version     int    `json:"version,omitempty" dynamodbav:"version,omitempty"`
	S3Path      string `json:"s3path,omitempty" dynamodbav:"s3path,omitempty"`
	GistID      string `json:"gistId,omitempty" dynamodbav:"gistId,omitempty"`

	// Config is the resolved (or to-be-uploaded) configuration text. It is
	// never written to the item store; the payload lives in the blob store
	// or behind the legacy reference.
	Config string `json:"config,omitempty" dynamodbav:"-"`
}

// IsEmpty reports whether the profile carries no fields at all.
func (p Profile) IsEmpty() bool {
	return p == Profile{}
}

// Summary is the cheap listing projection of a profile.
type Summary struct {
	Gogen       string `json:"gogen" dynamodbav:"gogen"`
	Description string `json:"description,omitempty" dynamodbav:"description,omitempty"`
}

// LocationKind enumerates where a profile's configuration payload lives.
type LocationKind int

const (
	// LocationUnset means the profile records no configuration location.
	LocationUnset LocationKind = iota
	// LocationBlob means the payload lives in the blob store at Path.
	LocationBlob
	// LocationLegacy means the payload lives behind the deprecated external
	// document reference Ref.
	LocationLegacy
)

// Location is the tagged variant form of a profile's configuration pointer.
// Exactly one case applies; modeling it this way removes the "both set"
// ambiguity of the raw fields.
type Location struct {
	Kind LocationKind
	Path string
	Ref  string
}

// Location derives the configuration location from the stored fields.
// The blob path takes precedence over a legacy reference.
func (p Profile) Location() Location {
	switch {
	case p.S3Path != "":
		return Location{Kind: LocationBlob, Path: p.S3Path}
	case p.GistID != "":
		return Location{Kind: LocationLegacy, Ref: p.GistID}
	default:
		return Location{Kind: LocationUnset}
	}
}

// BlobPath builds the deterministic blob store path for a profile's
// configuration payload.
func BlobPath(owner, name string) string {
	return owner + "/" + name + ConfigExtension
}
