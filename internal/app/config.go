package app

import "time"

const envPrefix = "RTVF"

func defaultConfig() map[string]any {
	return map[string]any{
		"tz":        "UTC",
		"log.level": "info",

		"delivery.endpoint.base_url":                "",
		"delivery.endpoint.path":                    "/webhook/email",
		"delivery.secret":                           "",
		"delivery.source.path":                      "./rtvf_data.csv",
		"delivery.chunk_size":                       150,
		"delivery.delay":                            200 * time.Millisecond,
		"delivery.timeout":                          60 * time.Second,
		"delivery.body_preview":                     300,
		"delivery.early_stop.skipped_old_threshold": 100,

		"feed.input_path":  "./rtvflistserve.html",
		"feed.output_path": "./rtvf_data.csv",

		"receiver.address": ":8787",
		"receiver.secret":  "",
		"receiver.max_age": 3600 * time.Hour,
	}
}
