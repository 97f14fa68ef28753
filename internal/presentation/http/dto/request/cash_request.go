package request

// OpenSessionRequest opens a cash session on a terminal
type OpenSessionRequest struct {
	Terminal     string  `json:"terminal" binding:"required,max=64"`
	OpeningFloat float64 `json:"opening_float" binding:"gte=0"`
}

// CloseSessionRequest closes a cash session with the counted drawer cash
type CloseSessionRequest struct {
	CountedCash float64 `json:"counted_cash" binding:"gte=0"`
}
