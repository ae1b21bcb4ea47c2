package config

import "strconv"

func parseInt64(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }
func parseInt(s string) (int, error)     { return strconv.Atoi(s) }
