package tick

import "bunnylords/internal/domain/keep"

type Request struct {
	SessionID string
	DT        float64
}

type Response struct {
	State  keep.SessionSnapshot `json:"state"`
	Report keep.TickReport      `json:"report"`
}
