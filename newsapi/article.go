package newsapi

import "time"

// Source identifies the publisher of an article.
type Source struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// Article is a single headline as returned by the top-headlines endpoint.
type Article struct {
	Source      Source     `json:"source"`
	Author      *string    `json:"author"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	URLToImage  string     `json:"urlToImage"`
	PublishedAt *time.Time `json:"publishedAt"`
	Content     string     `json:"content"`
}

// Response is the JSON envelope of every NewsAPI response. Code and Message
// are only populated when Status is "error".
type Response struct {
	Status       string    `json:"status"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
	Code         string    `json:"code,omitempty"`
	Message      string    `json:"message,omitempty"`
}
