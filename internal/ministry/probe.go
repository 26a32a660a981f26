package ministry

import (
	"context"
	"errors"
	"net/http"
)

// Candidate endpoint lists, most recent first.
var (
	LoginCandidates  = []string{"/Login", "/UserLogin"}
	FilterCandidates = []string{"/GetStudentAbsenceFilter", "/GetTeacherClasses"}
)

// ProbeResult identifies the candidate that answered.
type ProbeResult struct {
	Path   string
	Status int
	Body   []byte
}

// Probe posts payload to each candidate path in order. A 404 means "not
// here, try the next one"; the first other status is taken as the real
// endpoint and returned with its body. Transport failures are remembered
// and probing continues. When no candidate answers the error is
// KindEndpointNotFound, or KindNetwork if any transport failure occurred.
func (c *Client) Probe(ctx context.Context, op string, candidates []string, payload any) (ProbeResult, error) {
	var lastErr error
	for _, path := range candidates {
		status, body, err := c.post(ctx, path, payload)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ProbeResult{}, &Error{Kind: KindNetwork, Op: op, Err: ctxErr}
			}
			lastErr = err
			continue
		}
		if status == http.StatusNotFound {
			c.log.Debug().Str("op", op).Str("path", path).Msg("candidate not found")
			continue
		}
		return ProbeResult{Path: path, Status: status, Body: body}, nil
	}
	if lastErr != nil {
		return ProbeResult{}, &Error{Kind: KindNetwork, Op: op, Err: lastErr}
	}
	return ProbeResult{}, &Error{Kind: KindEndpointNotFound, Op: op, Status: http.StatusNotFound, Err: errors.New("no candidate endpoint responded")}
}
