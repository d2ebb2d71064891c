package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Числовые литералы
	NumInfo              Code = 3000
	NumLiteralOutOfRange Code = 3001
	NumNoIntersection    Code = 3002
	NumDifferentContent  Code = 3003
	NumMalformedRange    Code = 3004
	NumBadLiteral        Code = 3005
	NumNoCandidates      Code = 3006
	NumRangeInContent    Code = 3007

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Сценарии batch
	ScnInfo       Code = 5000
	ScnInvalid    Code = 5001
	ScnMismatch   Code = 5002
	ScnUnknownOp  Code = 5003
	ScnEmptyCases Code = 5004

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:          "Unknown error",
		NumInfo:              "Numeric literal information",
		NumLiteralOutOfRange: "Literal does not fit any numeric width",
		NumNoIntersection:    "Numeric constraints do not intersect",
		NumDifferentContent:  "Numeric literal used as a non-numeric type",
		NumMalformedRange:    "Malformed numeric range",
		NumBadLiteral:        "Malformed numeric literal",
		NumNoCandidates:      "Literal has no defaulting candidates",
		NumRangeInContent:    "Literal constraint is narrower than the candidate",
		IOLoadFileError:      "I/O load file error",
		IOCacheError:         "Result cache error",
		ScnInfo:              "Scenario information",
		ScnInvalid:           "Invalid scenario",
		ScnMismatch:          "Scenario expectation mismatch",
		ScnUnknownOp:         "Unknown scenario operation",
		ScnEmptyCases:        "Scenario file has no cases",
		ObsInfo:              "Observability information",
		ObsTimings:           "Batch timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("NUM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("SCN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
