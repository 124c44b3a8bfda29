package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

type ArticleSuggestion struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// SearchService serves article title suggestions from Elasticsearch. It is a
// read-only convenience layer: when the cluster is absent, slow, or broken
// it degrades to an empty result instead of failing the request.
type SearchService struct {
	client  *elasticsearch.Client
	index   string
	timeout time.Duration
}

func NewSearchService(client *elasticsearch.Client, index string, timeout time.Duration) *SearchService {
	if timeout <= 0 {
		timeout = 800 * time.Millisecond
	}
	return &SearchService{client: client, index: index, timeout: timeout}
}

// SuggestArticles returns up to limit published articles matching the query
// prefix. Failures are logged and surface as an empty list.
func (s *SearchService) SuggestArticles(ctx context.Context, query string, limit int) []ArticleSuggestion {
	if s.client == nil || query == "" {
		return []ArticleSuggestion{}
	}
	if limit <= 0 || limit > 25 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"match_bool_prefix": map[string]any{
						"title": query,
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"status": "published"},
				},
			},
		},
		"_source": []string{"title", "slug"},
	})
	if err != nil {
		log.Printf("search: build query: %v", err)
		return []ArticleSuggestion{}
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
		s.client.Search.WithSize(limit),
	)
	if err != nil {
		log.Printf("search: query failed: %v", err)
		return []ArticleSuggestion{}
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("search: query failed: %s", res.Status())
		return []ArticleSuggestion{}
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string `json:"_id"`
				Source struct {
					Title string `json:"title"`
					Slug  string `json:"slug"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		log.Printf("search: decode response: %v", err)
		return []ArticleSuggestion{}
	}

	suggestions := make([]ArticleSuggestion, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		suggestions = append(suggestions, ArticleSuggestion{
			ID:    hit.ID,
			Title: hit.Source.Title,
			Slug:  hit.Source.Slug,
		})
	}
	return suggestions
}

// IndexArticle pushes a published article document into the search index.
// Indexing is best-effort and never blocks publication.
func (s *SearchService) IndexArticle(ctx context.Context, id, title, slug, status string) {
	if s.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := json.Marshal(map[string]string{
		"title":  title,
		"slug":   slug,
		"status": status,
	})
	if err != nil {
		log.Printf("search: build document: %v", err)
		return
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(doc),
		s.client.Index.WithContext(ctx),
		s.client.Index.WithDocumentID(id),
	)
	if err != nil {
		log.Printf("search: index article %s: %v", id, err)
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Printf("search: index article %s: %s", id, res.Status())
	}
}
