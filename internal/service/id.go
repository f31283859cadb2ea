package service

import (
	"strconv"
	"strings"
)

// parseID 解析路径中的数字 ID
func parseID(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || value == 0 {
		return 0, ErrInvalidID
	}
	return uint(value), nil
}
