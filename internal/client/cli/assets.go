package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tommieseals/asset-tracker/internal/client/models"
	"github.com/tommieseals/asset-tracker/internal/client/viewmodel"
	"github.com/tommieseals/asset-tracker/internal/common"
)

// dashboard fetches and prints the aggregate inventory counts.
func (a *App) dashboard(ctx context.Context) error {
	summary, err := a.assets.Dashboard(ctx)
	a.model.ApplySummary(summary, err)
	if err != nil {
		return err
	}
	a.renderSummary(summary)
	return nil
}

// list fetches the asset collection, optionally filtered by category, and
// renders it. When the server is unreachable the last known snapshot is
// shown instead.
func (a *App) list(ctx context.Context, args []string) error {
	category := ""
	if len(args) > 0 {
		category = args[0]
		if !models.Category(category).Valid() {
			fmt.Fprintf(a.out, "Unknown category %q. Valid categories: %s\n", category, joinCategories())
			return nil
		}
	}

	a.model.SetQuery(viewmodel.Query{CategoryFilter: category})

	assets, err := a.assets.List(ctx, category)
	a.model.ApplyListing(category, assets, err)
	if err != nil {
		if errors.Is(err, common.ErrUnavailable) {
			return a.renderLastKnown(ctx, err)
		}
		return err
	}

	a.renderView(a.model.View())
	return nil
}

// search runs the query through the view model's source selection: a long
// enough query consults the search oracle, a shorter one falls back to the
// filtered listing.
func (a *App) search(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		fmt.Fprintln(a.out, "Usage: search <text>")
		return nil
	}

	q := viewmodel.Query{SearchText: text, CategoryFilter: a.model.Query().CategoryFilter}
	a.model.SetQuery(q)

	if a.model.Source() == viewmodel.SourceSearch {
		results, err := a.assets.Search(ctx, text)
		a.model.ApplySearch(text, results, err)
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintf(a.out, "Query too short for search (need %d+ characters), showing listing.\n", a.searchMinLength())
		assets, err := a.assets.List(ctx, q.CategoryFilter)
		a.model.ApplyListing(q.CategoryFilter, assets, err)
		if err != nil {
			return err
		}
	}

	a.renderView(a.model.View())
	return nil
}

// show displays a single asset, addressed either by numeric id or by tag.
func (a *App) show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <id|tag>")
		return nil
	}

	var (
		asset *models.Asset
		err   error
	)
	if id, perr := strconv.ParseInt(args[0], 10, 64); perr == nil {
		asset, err = a.assets.Get(ctx, id)
	} else {
		asset, err = a.assets.GetByTag(ctx, args[0])
	}
	if err != nil {
		return err
	}

	a.renderAsset(asset)
	return nil
}

// checkOut checks an asset out to the signed-in user. The affordance is
// gated client-side on the asset's current status; the server remains the
// authority and may still reject.
func (a *App) checkOut(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: checkout <id> [notes]")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Asset id must be a number.")
		return nil
	}

	asset, err := a.assets.Get(ctx, id)
	if err != nil {
		return err
	}
	if !asset.CanCheckOut() {
		fmt.Fprintf(a.out, "Asset %s is %s; only available assets can be checked out.\n", asset.AssetTag, asset.Status)
		return nil
	}

	updated, err := a.assets.CheckOut(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Checked out %s (%s).\n", updated.AssetTag, updated.Name)
	a.refetchInvalidated(ctx)
	return nil
}

// checkIn returns a checked-out asset.
func (a *App) checkIn(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: checkin <id> [notes]")
		return nil
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Asset id must be a number.")
		return nil
	}

	asset, err := a.assets.Get(ctx, id)
	if err != nil {
		return err
	}
	if !asset.CanCheckIn() {
		fmt.Fprintf(a.out, "Asset %s is %s; only checked-out assets can be checked in.\n", asset.AssetTag, asset.Status)
		return nil
	}

	updated, err := a.assets.CheckIn(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Checked in %s (%s).\n", updated.AssetTag, updated.Name)
	a.refetchInvalidated(ctx)
	return nil
}

// refetchInvalidated consumes pending invalidation signals and refetches
// the stale views from the server. Local responses are never patched into
// the cached views; the refetched state is the only source of truth.
func (a *App) refetchInvalidated(ctx context.Context) {
	select {
	case <-a.assetsCh:
		q := a.model.Query()
		if a.model.Source() == viewmodel.SourceSearch {
			results, err := a.assets.Search(ctx, q.SearchText)
			a.model.ApplySearch(q.SearchText, results, err)
		} else {
			assets, err := a.assets.List(ctx, q.CategoryFilter)
			a.model.ApplyListing(q.CategoryFilter, assets, err)
		}
	default:
	}

	select {
	case <-a.dashCh:
		summary, err := a.assets.Dashboard(ctx)
		a.model.ApplySummary(summary, err)
	default:
	}
}

// renderLastKnown falls back to the cached snapshot when a listing fetch
// fails because the server is unreachable.
func (a *App) renderLastKnown(ctx context.Context, fetchErr error) error {
	snap, err := a.assets.LastKnown(ctx)
	if err != nil || snap == nil {
		return fetchErr
	}

	fmt.Fprintf(a.out, "Server unavailable. Showing inventory as of %s.\n", snap.FetchedAt.Local().Format(time.RFC822))
	a.renderAssets(snap.Assets)
	return nil
}

func (a *App) renderView(v viewmodel.View) {
	if v.Summary != nil {
		a.renderSummary(v.Summary)
	}
	if v.Err != nil {
		a.printError(context.Background(), v.Err)
		return
	}
	a.renderAssets(v.Assets)
}

func (a *App) renderSummary(s *models.DashboardSummary) {
	fmt.Fprintf(a.out, "Assets: %d total, %d available, %d checked out, %d in maintenance\n",
		s.TotalAssets, s.AvailableAssets, s.CheckedOutAssets, s.MaintenanceAssets)
}

func (a *App) renderAssets(assets []models.Asset) {
	if len(assets) == 0 {
		fmt.Fprintln(a.out, "No assets.")
		return
	}

	fmt.Fprintf(a.out, "%-6s %-14s %-28s %-12s %-12s %s\n", "ID", "TAG", "NAME", "CATEGORY", "STATUS", "ASSIGNEE")
	for _, asset := range assets {
		assignee := ""
		if asset.Assignee != nil {
			assignee = asset.Assignee.FullName
		}
		fmt.Fprintf(a.out, "%-6d %-14s %-28s %-12s %-12s %s\n",
			asset.ID, asset.AssetTag, asset.Name, asset.Category, asset.Status, assignee)
	}
}

func (a *App) renderAsset(asset *models.Asset) {
	fmt.Fprintf(a.out, "%s  %s\n", asset.AssetTag, asset.Name)
	fmt.Fprintf(a.out, "Category: %s\n", asset.Category)
	fmt.Fprintf(a.out, "Status: %s\n", asset.Status)
	if asset.SerialNumber != nil && *asset.SerialNumber != "" {
		fmt.Fprintf(a.out, "Serial: %s\n", *asset.SerialNumber)
	}
	if asset.Manufacturer != nil && *asset.Manufacturer != "" {
		fmt.Fprintf(a.out, "Manufacturer: %s\n", *asset.Manufacturer)
	}
	if asset.Model != nil && *asset.Model != "" {
		fmt.Fprintf(a.out, "Model: %s\n", *asset.Model)
	}
	if asset.Location != nil && *asset.Location != "" {
		fmt.Fprintf(a.out, "Location: %s\n", *asset.Location)
	}
	if asset.Assignee != nil {
		fmt.Fprintf(a.out, "Assigned to: %s (%s)\n", asset.Assignee.FullName, asset.Assignee.Department)
	}
	if asset.Notes != nil && *asset.Notes != "" {
		fmt.Fprintf(a.out, "Notes: %s\n", *asset.Notes)
	}
}

func (a *App) searchMinLength() int {
	if a.config != nil && a.config.SearchMinLength > 0 {
		return a.config.SearchMinLength
	}
	return viewmodel.DefaultSearchMinLength
}

func joinCategories() string {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
