// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package searchapi

import (
	"errors"
	"fmt"
)

// ErrMalformedPayload indicates a success response whose body could not be
// decoded. The strategy outcome for this is fail, not error.
var ErrMalformedPayload = errors.New("malformed search payload")

// HTTPError is a non-200 response from the search backend.
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string // trimmed body excerpt, may be empty
}

func (e *HTTPError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("search status: %s", e.Status)
	}
	return fmt.Sprintf("search status: %s: %s", e.Status, e.Message)
}

// StatusOf extracts the HTTP status code from an error chain, or 0 when the
// call never produced a response.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode
	}
	return 0
}
