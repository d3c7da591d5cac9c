package session

import "bunnylords/internal/domain/keep"

type Request struct{}

type Response struct {
	SessionID string               `json:"session_id"`
	State     keep.SessionSnapshot `json:"state"`
}
