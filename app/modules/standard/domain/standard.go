package standarddomain

// StandardLevel is a named time threshold. Legacy levels belong to the
// retired ladder still shown alongside historical standings.
type StandardLevel struct {
	ID       int32  `json:"id"`
	Code     string `json:"code"`
	Value    int32  `json:"value"`
	IsLegacy bool   `json:"isLegacy"`
}
