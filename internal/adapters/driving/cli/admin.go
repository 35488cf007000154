package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medcheck-cli/internal/core/domain"
)

var adminSet []string

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage backend reference data (admin only)",
	Long: `List, inspect, create, update and delete backend records.

Requires an admin session; run "medcheck login" first.

Resources:
  ` + resourceList(),
}

var adminListCmd = &cobra.Command{
	Use:   "list [resource]",
	Short: "List all records of a resource",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminList,
}

var adminGetCmd = &cobra.Command{
	Use:   "get [resource] [id]",
	Short: "Show one record",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminGet,
}

var adminCreateCmd = &cobra.Command{
	Use:   "create [resource]",
	Short: "Create a record",
	Long: `Create a record from --set key=value pairs.

Example:
  medcheck admin create food_items --set name=Grapefruit --set category=Fruit`,
	Args: cobra.ExactArgs(1),
	RunE: runAdminCreate,
}

var adminUpdateCmd = &cobra.Command{
	Use:   "update [resource] [id]",
	Short: "Update fields of a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminUpdate,
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete [resource] [id]",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdminDelete,
}

func init() {
	for _, c := range []*cobra.Command{adminCreateCmd, adminUpdateCmd} {
		c.Flags().StringArrayVar(&adminSet, "set", nil, "field value as key=value (repeatable)")
	}
	adminCmd.AddCommand(adminListCmd)
	adminCmd.AddCommand(adminGetCmd)
	adminCmd.AddCommand(adminCreateCmd)
	adminCmd.AddCommand(adminUpdateCmd)
	adminCmd.AddCommand(adminDeleteCmd)
	rootCmd.AddCommand(adminCmd)
}

func resourceList() string {
	names := make([]string, 0, len(domain.AllResources()))
	for _, r := range domain.AllResources() {
		names = append(names, r.String())
	}
	return strings.Join(names, "\n  ")
}

func runAdminList(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errNotConfigured("admin service")
	}
	resource, err := domain.ParseResource(args[0])
	if err != nil {
		return err
	}

	records, err := adminService.List(cmd.Context(), resource)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		cmd.Printf("No %s found.\n", resource)
		return nil
	}
	for _, rec := range records {
		cmd.Printf("  [%s] %s\n", rec.ID(), recordSummary(rec))
	}
	return nil
}

func runAdminGet(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errNotConfigured("admin service")
	}
	resource, err := domain.ParseResource(args[0])
	if err != nil {
		return err
	}

	rec, err := adminService.Get(cmd.Context(), resource, args[1])
	if err != nil {
		return err
	}
	return printRecord(cmd, rec)
}

func runAdminCreate(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errNotConfigured("admin service")
	}
	resource, err := domain.ParseResource(args[0])
	if err != nil {
		return err
	}
	rec, err := parseSetFlags(adminSet)
	if err != nil {
		return err
	}

	created, err := adminService.Create(cmd.Context(), resource, rec)
	if err != nil {
		return err
	}
	cmd.Printf("Created %s %s\n", resource, created.ID())
	return nil
}

func runAdminUpdate(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errNotConfigured("admin service")
	}
	resource, err := domain.ParseResource(args[0])
	if err != nil {
		return err
	}
	rec, err := parseSetFlags(adminSet)
	if err != nil {
		return err
	}

	if _, err := adminService.Update(cmd.Context(), resource, args[1], rec); err != nil {
		return err
	}
	cmd.Printf("Updated %s %s\n", resource, args[1])
	return nil
}

func runAdminDelete(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errNotConfigured("admin service")
	}
	resource, err := domain.ParseResource(args[0])
	if err != nil {
		return err
	}

	if err := adminService.Delete(cmd.Context(), resource, args[1]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s %s\n", resource, args[1])
	return nil
}

// parseSetFlags turns key=value pairs into a record. Integers, floats and
// booleans are sent as JSON numbers and booleans; everything else is text.
func parseSetFlags(pairs []string) (domain.Record, error) {
	rec := make(domain.Record, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: --set expects key=value, got %q", domain.ErrInvalidInput, pair)
		}
		rec[key] = parseSetValue(value)
	}
	return rec, nil
}

func parseSetValue(value string) any {
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

// recordSummary picks the most descriptive field of a record for listings.
func recordSummary(rec domain.Record) string {
	for _, key := range []string{"name", "title", "username"} {
		if v, ok := rec[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
	}
	keys := make([]string, 0, len(rec))
	for k := range rec {
		if k != "id" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, rec[k]))
	}
	return strings.Join(parts, " ")
}

func printRecord(cmd *cobra.Command, rec domain.Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
