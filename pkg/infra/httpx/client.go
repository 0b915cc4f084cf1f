package httpx

import (
	"net/http"
)

//go:generate mockery --name=Client --dir=. --output=./mocks --filename=http_client_mock.go --case=underscore --with-expecter

// Client abstracts the outbound HTTP client so collaborator calls can be
// mocked in tests.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
