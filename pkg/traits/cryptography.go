package traits

// Cryptography trait IDs.
const (
	DigitallySignedID = "ayon.cryptography.DigitallySigned.v1"
	PGPSignedID       = "ayon.cryptography.PGPSigned.v1"
)

// DigitallySigned marks digitally signed content.
type DigitallySigned struct {
	baseTrait
}

func (*DigitallySigned) ID() string          { return DigitallySignedID }
func (*DigitallySigned) TraitName() string   { return "DigitallySigned" }
func (*DigitallySigned) Description() string { return "Digitally Signed Trait" }

// PGPSigned holds a PGP signature payload for the content.
type PGPSigned struct {
	baseTrait
	SignedData string `json:"signed_data"`
	ClearText  string `json:"clear_text,omitempty"`
}

func (*PGPSigned) ID() string          { return PGPSignedID }
func (*PGPSigned) TraitName() string   { return "PGPSigned" }
func (*PGPSigned) Description() string { return "PGP Signed Trait" }
