package db

type Webpage struct {
	Url        string
	Html       string
	StatusCode int64
	FetchedAt  int64
}
