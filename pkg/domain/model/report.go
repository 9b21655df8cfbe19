package model

// ReportState is the pipeline-local working record for one synthesis
// run: the incident under synthesis, the generated postmortem text and
// the validation verdict. It exists only for the duration of a single
// run and is discarded after dispatch.
type ReportState struct {
	Incident   *Incident
	Postmortem string
	Valid      bool
}
