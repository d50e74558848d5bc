package services

import (
	"fmt"
	"strconv"
	"strings"

	"MetOptix/util"
)

/*
* Only ids shaped PT<digits> count, anything else is skipped
* Next id is the largest suffix plus one, zero padded to four digits
 */
func NextPatientID(ids []string) string {
	var highest int64
	for _, id := range ids {
		suffix, ok := strings.CutPrefix(id, util.PatientIDPrefix)
		if !ok || !isDigits(suffix) {
			continue
		}
		n, err := strconv.ParseInt(suffix, 10, 64)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%0*d", util.PatientIDPrefix, util.PatientIDDigits, highest+1)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
