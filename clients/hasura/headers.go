package hasura

import (
	"net/http"
)

// RequestFlags is a set of request options which add headers to outgoing request
type RequestFlags uint8

const (
	// UseAdminSecret sends request with admin secret & backend only permissions
	UseAdminSecret RequestFlags = 1 << iota
)

// Has checks if all flags from f are set
func (rf RequestFlags) Has(f RequestFlags) bool {
	return rf&f == f
}

// AuthorizationOption is a key of authorization option
type AuthorizationOption string

const (
	OptionUserID      AuthorizationOption = "userId"
	OptionBearerToken AuthorizationOption = "bearerToken"
	OptionRole        AuthorizationOption = "role"
)

// AuthorizationOptions is a list of authorization values by option
type AuthorizationOptions map[AuthorizationOption]string

const (
	HeaderAdminSecret               = "x-hasura-admin-secret"
	HeaderUseBackendOnlyPermissions = "x-hasura-use-backend-only-permissions"
	HeaderUserID                    = "x-hasura-user-id"
	HeaderRole                      = "x-hasura-role"
	HeaderAuthorization             = "authorization"
)

// authorizationHeaders maps authorization options to header names.
// Options which are not listed here are ignored.
var authorizationHeaders = map[AuthorizationOption]string{
	OptionUserID:      HeaderUserID,
	OptionBearerToken: HeaderAuthorization,
	OptionRole:        HeaderRole,
}

// headersByFlags returns headers required by request flags
func (s *Service) headersByFlags(flags RequestFlags) (http.Header, error) {
	h := http.Header{}
	if flags.Has(UseAdminSecret) {
		secret, err := s.adminSecret()
		if err != nil {
			return nil, err
		}
		h.Set(HeaderAdminSecret, secret)
	}
	// NOTE: same flag as for admin secret, there is no separate one for backend only permissions
	if flags.Has(UseAdminSecret) {
		h.Set(HeaderUseBackendOnlyPermissions, "true")
	}
	return h, nil
}

// headersByAuthorizationOptions returns headers for authorization options using header names table
func headersByAuthorizationOptions(opts AuthorizationOptions, names map[AuthorizationOption]string) http.Header {
	h := http.Header{}
	for opt, value := range opts {
		name, ok := names[opt]
		if !ok {
			continue
		}
		if name == HeaderAuthorization {
			value = "Bearer " + value
		}
		h.Set(name, value)
	}
	return h
}

// overlay sets all values from src to dst replacing existing ones
func overlay(dst, src http.Header) {
	for k, v := range src {
		dst[k] = v
	}
}

// Headers returns headers for outgoing request. Caller headers have the lowest priority,
// then flag headers, then authorization option headers.
func (s *Service) Headers(req *Request) (http.Header, error) {
	if req == nil {
		return nil, ErrEmptyRequest
	}

	h := http.Header{}
	for k, v := range req.Headers {
		h.Set(k, v)
	}

	flagHeaders, err := s.headersByFlags(req.Flags)
	if err != nil {
		return nil, err
	}
	overlay(h, flagHeaders)
	overlay(h, headersByAuthorizationOptions(req.AuthorizationOptions, s.authHeaders))

	return h, nil
}
