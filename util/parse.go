// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package util

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// IsDigitLed returns true iff s starts with an ASCII digit.  Chromosomes are
// identified by number in every input; rows whose chromosome column does not
// start with a digit are header or unplaced-contig rows.
func IsDigitLed(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

// ParseChr parses the leading digits of s as a chromosome number, ignoring
// any suffix ("2_random" is chromosome 2).  It returns false if s does not
// start with a digit or the number does not fit in an int32.
func ParseChr(s string) (int32, bool) {
	if !IsDigitLed(s) {
		return 0, false
	}
	var n int64
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int64(s[i]-'0')
		if n > math.MaxInt32 {
			return 0, false
		}
	}
	return int32(n), true
}

// ParsePos parses a nonnegative 1-based coordinate.
func ParsePos(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Errorf("negative coordinate %s", s)
	}
	return int32(n), nil
}
