package errors

import (
	"errors"
	"fmt"
)

// UpstreamError carries the raw failure detail of a catalog backend call.
// The message field mirrors whatever the backend put in its error body.
type UpstreamError struct {
	Status   int
	Endpoint string
	Message  string
}

func (u *UpstreamError) Error() string {
	if u.Message != "" {
		return fmt.Sprintf("backend %s returned %d: %s", u.Endpoint, u.Status, u.Message)
	}
	return fmt.Sprintf("backend %s returned %d", u.Endpoint, u.Status)
}

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus   int    `json:"upstream_status,omitempty"`
	UpstreamEndpoint string `json:"upstream_endpoint,omitempty"`
	UpstreamMessage  string `json:"upstream_message,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		d.UpstreamStatus = upstream.Status
		d.UpstreamEndpoint = upstream.Endpoint
		d.UpstreamMessage = upstream.Message
	}

	return d
}
