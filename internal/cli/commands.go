// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tomtom215/bookvibe/internal/recommend"
)

func newTitlesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "titles",
		Short: "List the books in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := a.engine.ListItems()
			if err != nil {
				return fmt.Errorf("list titles: %w", err)
			}
			if a.opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), booksResponse(items))
			}
			return writeBooksTable(cmd.OutOrStdout(), items)
		},
	}
}

func newUsersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List the users with ratings",
		Long: `Lists users that can be passed to the user and hybrid commands.
The list is empty when fewer than two users have rated books, since
collaborative filtering needs at least two.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := a.engine.ListUserIDs()
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			if a.opts.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), usersResponse(users, a.status.CollaborativeAvailable))
			}
			return writeUsers(cmd.OutOrStdout(), users)
		},
	}
}

func newContentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "content <item-id|title>",
		Short: "Recommend books similar to a book",
		Long: `Ranks books by similarity of title, author, and genre to the given book.
The book itself is never recommended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := a.resolveItem(args[0])
			if err != nil {
				return err
			}
			result, err := a.engine.RecommendByContent(cmd.Context(), itemID, a.opts.k)
			if err != nil {
				return fmt.Errorf("content recommendations: %w", err)
			}
			return a.writeResult(cmd, result, &itemID, nil)
		},
	}
}

func newUserCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "user <user-id>",
		Short: "Recommend books liked by similar readers",
		Long: `Finds the readers whose ratings are most similar to the given user and
recommends the books they rated highest that the user has not rated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID("user", args[0])
			if err != nil {
				return err
			}
			result, err := a.engine.RecommendForUser(cmd.Context(), userID, a.opts.k)
			if err != nil {
				return fmt.Errorf("user recommendations: %w", err)
			}
			return a.writeResult(cmd, result, nil, &userID)
		},
	}
}

func newHybridCmd(a *app) *cobra.Command {
	var userID int

	cmd := &cobra.Command{
		Use:   "hybrid <item-id|title>",
		Short: "Blend content similarity with a reader's ratings",
		Long: `Combines similarity to the given book with the ratings of --user.
Without --user, or when the user has no ratings, content similarity alone
is used and a warning is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := a.resolveItem(args[0])
			if err != nil {
				return err
			}

			req := recommend.HybridRequest{ItemID: itemID, K: a.opts.k}
			if cmd.Flags().Changed("user") {
				req.UserID = &userID
			}

			result, err := a.engine.RecommendHybrid(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("hybrid recommendations: %w", err)
			}
			return a.writeResult(cmd, result, &itemID, req.UserID)
		},
	}

	cmd.Flags().IntVar(&userID, "user", 0, "user whose ratings personalise the results")
	return cmd
}

// resolveItem accepts a Book_ID or an exact title, ignoring case. A known
// ID wins over a numeric title; an unknown integer is passed through so the
// engine reports it.
func (a *app) resolveItem(arg string) (int, error) {
	items, err := a.engine.ListItems()
	if err != nil {
		return 0, fmt.Errorf("list titles: %w", err)
	}

	arg = strings.TrimSpace(arg)
	id, idErr := strconv.Atoi(arg)
	if idErr == nil {
		for i := range items {
			if items[i].ID == id {
				return id, nil
			}
		}
	}
	for i := range items {
		if strings.EqualFold(items[i].Title, arg) {
			return items[i].ID, nil
		}
	}
	if idErr == nil {
		return id, nil
	}
	return 0, fmt.Errorf("no book titled %q (run 'bookvibe titles' to list the catalog)", arg)
}

func parseID(kind, arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q: must be an integer", kind, arg)
	}
	return id, nil
}

func (a *app) writeResult(cmd *cobra.Command, result *recommend.Result, itemID, userID *int) error {
	if a.opts.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), recommendationResponse(result, itemID, userID))
	}
	return writeRecommendationsTable(cmd.OutOrStdout(), result)
}
