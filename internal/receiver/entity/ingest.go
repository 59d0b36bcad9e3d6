package entity

// IngestResult counts what happened to the rows of one ingested csv body.
type IngestResult struct {
	Inserted   int
	Deduped    int
	Failed     int
	SkippedOld int
	Total      int
}
