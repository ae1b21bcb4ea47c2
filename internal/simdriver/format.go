package simdriver

import "strconv"

func itoa(v int) string       { return strconv.Itoa(v) }
func utoa(v uint64) string    { return strconv.FormatUint(v, 10) }
func ftoa(v float64) string   { return strconv.FormatFloat(v, 'g', 4, 64) }
