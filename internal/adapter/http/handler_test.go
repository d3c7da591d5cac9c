package httpadapter

import (
	"encoding/json"
	"testing"

	"bunnylords/internal/app/battle"
	"bunnylords/internal/app/command"
	"bunnylords/internal/app/ports"
	"bunnylords/internal/app/tick"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body map[string]map[string]string
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return body["error"]["code"]
}

func TestWriteError_NotFound(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrNotFound)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "not_found"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_Conflict(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, ports.ErrConflict)

	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "conflict"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_UnknownStage(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, battle.ErrUnknownStage)

	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status mismatch: got=%d want=%d", got, want)
	}
	if got, want := errorCode(t, ctx), "unknown_stage"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestWriteError_BadRequests(t *testing.T) {
	for _, err := range []error{tick.ErrInvalidDT, tick.ErrInvalidRequest, command.ErrUnknownIntent} {
		ctx := &app.RequestContext{}
		writeError(ctx, err)
		if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
			t.Fatalf("%v: status got=%d want=400", err, got)
		}
	}
}

func TestWriteError_UnknownErrorIsInternal(t *testing.T) {
	ctx := &app.RequestContext{}
	writeError(ctx, json.Unmarshal([]byte("{"), &struct{}{}))

	if got := ctx.Response.StatusCode(); got != consts.StatusInternalServerError {
		t.Fatalf("status got=%d want=500", got)
	}
	if got, want := errorCode(t, ctx), "internal_error"; got != want {
		t.Fatalf("error code mismatch: got=%q want=%q", got, want)
	}
}

func TestDecodeJSON(t *testing.T) {
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"dt": 2.5}`))
	var body tickRequest
	if err := decodeJSON(ctx, &body); err != nil {
		t.Fatalf("decodeJSON error: %v", err)
	}
	if body.DT != 2.5 {
		t.Fatalf("expected dt 2.5, got %v", body.DT)
	}

	ctx = &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{broken`))
	if err := decodeJSON(ctx, &body); err == nil {
		t.Fatal("expected error for broken json")
	}

	// an empty body decodes to the zero value
	ctx = &app.RequestContext{}
	var empty tickRequest
	if err := decodeJSON(ctx, &empty); err != nil {
		t.Fatalf("empty body: %v", err)
	}
}
