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


package diagnose

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/poiesic/searchdiag/core"
)

// Classify inspects the raw HTTP metadata of one exchange and returns zero or
// more anomaly records. It is a pure function: same exchange, same records.
//
// A clean 200 with consistent headers yields an empty (non-nil) slice. The
// rules apply independently, so one exchange can yield several records;
// other_non_200 only fires when no other rule matched.
func Classify(pair core.Pair, ex *core.RawExchange) []core.AnomalyRecord {
	records := []core.AnomalyRecord{}

	record := func(kind core.AnomalyKind, detail string) {
		records = append(records, core.AnomalyRecord{
			Strategy: pair.Strategy,
			Index:    pair.Index,
			Kind:     kind,
			Detail:   detail,
		})
	}

	if ex.StatusCode == http.StatusPartialContent {
		record(core.AnomalyPartialContent,
			fmt.Sprintf("%s with %d body bytes", ex.Status, ex.BodyBytes))
	}

	if cl := ex.Header.Get("Content-Length"); cl != "" {
		length, err := strconv.ParseInt(cl, 10, 64)
		if err != nil || length != int64(ex.BodyBytes) {
			record(core.AnomalyContentLengthMismatch,
				fmt.Sprintf("Content-Length %q but read %d bytes", cl, ex.BodyBytes))
		}
	}

	if !ex.RangeRequested {
		for _, header := range []string{"Content-Range", "Range"} {
			if v := ex.Header.Get(header); v != "" {
				record(core.AnomalyUnexpectedRangeHeader,
					fmt.Sprintf("%s: %s on a response where no range was requested", header, v))
			}
		}
	}

	if ex.StatusCode != http.StatusOK && ex.StatusCode != http.StatusPartialContent && len(records) == 0 {
		record(core.AnomalyOtherNon200,
			fmt.Sprintf("%s with %d body bytes", ex.Status, ex.BodyBytes))
	}

	return records
}
