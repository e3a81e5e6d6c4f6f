// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/tomtom215/bookvibe/internal/models"
	"github.com/tomtom215/bookvibe/internal/recommend"
)

// JSON output reuses the API payload types so scripts can consume either.

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func toBook(it *recommend.Item) models.Book {
	return models.Book{ID: it.ID, Title: it.Title, Author: it.Author, Genre: it.Genre}
}

func booksResponse(items []recommend.Item) models.BooksResponse {
	resp := models.BooksResponse{
		Titles: make([]string, len(items)),
		Books:  make([]models.Book, len(items)),
		Count:  len(items),
	}
	for i := range items {
		resp.Titles[i] = items[i].Title
		resp.Books[i] = toBook(&items[i])
	}
	return resp
}

func usersResponse(users []int, collaborative bool) models.UsersResponse {
	if users == nil {
		users = []int{}
	}
	return models.UsersResponse{Users: users, Count: len(users), CollaborativeAvailable: collaborative}
}

func recommendationResponse(result *recommend.Result, itemID, userID *int) models.RecommendationResponse {
	recs := make([]models.Recommendation, len(result.Items))
	for i := range result.Items {
		recs[i] = models.Recommendation{
			Rank:  i + 1,
			Book:  toBook(&result.Items[i].Item),
			Score: result.Items[i].Score,
		}
	}
	return models.RecommendationResponse{
		Strategy:        result.Strategy.String(),
		ItemID:          itemID,
		UserID:          userID,
		K:               len(recs),
		Recommendations: recs,
		Fallback:        result.Fallback,
		FallbackReason:  result.FallbackReason,
		Warning:         result.Warning,
	}
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeBooksTable(w io.Writer, items []recommend.Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No books in the catalog.")
		return err
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tGENRE")
	for i := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", items[i].ID, items[i].Title, items[i].Author, items[i].Genre)
	}
	return tw.Flush()
}

func writeUsers(w io.Writer, users []int) error {
	if len(users) == 0 {
		_, err := fmt.Fprintln(w, "Not enough rating data for collaborative filtering (need at least two users).")
		return err
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "USER_ID")
	for _, id := range users {
		fmt.Fprintf(tw, "%d\n", id)
	}
	return tw.Flush()
}

func writeRecommendationsTable(w io.Writer, result *recommend.Result) error {
	if result.Warning != "" {
		fmt.Fprintf(w, "Note: %s\n\n", result.Warning)
	}
	if len(result.Items) == 0 {
		_, err := fmt.Fprintln(w, "No new recommendations found.")
		return err
	}

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "RANK\tID\tTITLE\tAUTHOR\tGENRE\tSCORE")
	for i := range result.Items {
		it := &result.Items[i]
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%.4f\n", i+1, it.ID, it.Title, it.Author, it.Genre, it.Score)
	}
	return tw.Flush()
}
