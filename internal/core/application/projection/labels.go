package projection

import "returns/internal/core/domain/model/rescase"

// Label lookup is a static table, not business logic. The tables translate
// machine states and reason codes into the text both UI surfaces render.

func getStateWireNames() map[rescase.State]string {
	return map[rescase.State]string{
		rescase.OpenReturn:         "OPEN_RETURN",
		rescase.OpenExchange:       "OPEN_EXCHANGE",
		rescase.ExchangeInProgress: "EXCHANGE_IN_PROGRESS",
		rescase.Closed:             "CLOSED",
	}
}

func getStateLabels() map[rescase.State]string {
	return map[rescase.State]string{
		rescase.OpenReturn:         "Return requested",
		rescase.OpenExchange:       "Exchange approved",
		rescase.ExchangeInProgress: "Exchange in progress",
		rescase.Closed:             "Closed",
	}
}

func getReasonLabels() map[string]string {
	return map[string]string{
		"size_mismatch": "Size mismatch",
		"damaged":       "Damaged in transit",
		"wrong_item":    "Wrong item delivered",
		"quality":       "Quality complaint",
		"changed_mind":  "Changed mind",
		"other":         "Other",
	}
}

// StateWireName returns the state constant exposed on the API surface.
func StateWireName(state rescase.State) string {
	if name, ok := getStateWireNames()[state]; ok {
		return name
	}
	return "UNKNOWN"
}

// StateLabel returns the display label for a case state.
func StateLabel(state rescase.State) string {
	if label, ok := getStateLabels()[state]; ok {
		return label
	}
	return "Unknown"
}

// ReasonLabel returns the display label for a reason code, falling back to
// the raw text for free-form reasons.
func ReasonLabel(reason string) string {
	if label, ok := getReasonLabels()[reason]; ok {
		return label
	}
	return reason
}
