package constants

// Stage is the canonical per-document extraction stage. A document advances
// through these in order and collapses to StageFailed on the first error.
type Stage string

const (
	StageTextExtracted Stage = "TEXT_EXTRACTED" // raw text pulled from the PDF
	StagePrompted      Stage = "PROMPTED"       // capability invoked
	StageParsed        Stage = "PARSED"         // reply parsed as JSON
	StageNormalized    Stage = "NORMALIZED"     // amounts/dates canonicalized
	StageReconciled    Stage = "RECONCILED"     // schema alignment complete
	StageFailed        Stage = "FAILED"         // terminal failure
)
