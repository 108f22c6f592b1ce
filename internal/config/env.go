package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

// lookupBool treats any value but "0" and "false" as true.
func lookupBool(key string, dst *bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false":
		*dst = false
	default:
		*dst = true
	}
}

func lookupInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	*dst = n
	return nil
}

func lookupDuration(key string, dst *Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("unable to parse %s: %w", key, err)
	}
	dst.Duration = d
	return nil
}

func lookupList(key string, dst *[]string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	var list []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	*dst = list
}

// lookupSecret reads key, falling back to the file named by key_FILE.
func lookupSecret(key string, dst *string) error {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
		return nil
	}
	path, ok := os.LookupEnv(key + "_FILE")
	if !ok {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", key+"_FILE", err)
	}
	*dst = strings.TrimSpace(string(data))
	return nil
}
