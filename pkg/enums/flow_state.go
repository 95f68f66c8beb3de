package enums

import "fmt"

// FlowState is the current step of the multi-stage ordering process.
type FlowState string

const (
	FlowStateDelivery FlowState = "delivery"
	FlowStateCategory FlowState = "category"
	FlowStateProducts FlowState = "products"
	FlowStateCheckout FlowState = "checkout"
	FlowStateSuccess  FlowState = "success"
)

var validFlowStates = []FlowState{
	FlowStateDelivery,
	FlowStateCategory,
	FlowStateProducts,
	FlowStateCheckout,
	FlowStateSuccess,
}

// String implements fmt.Stringer.
func (f FlowState) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FlowState.
func (f FlowState) IsValid() bool {
	for _, candidate := range validFlowStates {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFlowState converts raw input into a FlowState.
func ParseFlowState(value string) (FlowState, error) {
	for _, candidate := range validFlowStates {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid flow state %q", value)
}
