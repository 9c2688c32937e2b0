package parser

import "strconv"

// State is the externally observable parser progress.
type State uint8

const (
	AwaitingStartLine State = iota
	AwaitingHeaders
	AwaitingBody
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case AwaitingStartLine:
		return "AwaitingStartLine"
	case AwaitingHeaders:
		return "AwaitingHeaders"
	case AwaitingBody:
		return "AwaitingBody"
	case Complete:
		return "Complete"
	case Failed:
		return "Failed"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// bodyState refines the AwaitingBody state.
type bodyState uint8

const (
	eFixed bodyState = iota
	eChunkSize
	eChunkData
	eChunkDataCR
	eChunkDataLF
	eTrailer
)
