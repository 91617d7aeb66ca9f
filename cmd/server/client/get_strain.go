package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/strain-screen/internal/errors"
	"github.com/KirkDiggler/strain-screen/internal/handlers/web"
)

var (
	strainJSONOutput bool
	strainFresh      bool
)

var getStrainCmd = &cobra.Command{
	Use:   "get-strain [strain-id]",
	Short: "Get the merged view of a strain",
	Long:  `Fetch effects, description and flavors of one strain through the server's JSON API.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGetStrain,
}

func init() {
	getStrainCmd.Flags().BoolVar(&strainJSONOutput, "json", false, "Output as JSON")
	getStrainCmd.Flags().BoolVar(&strainFresh, "fresh", false, "Bypass the strain view cache")
}

func runGetStrain(cmd *cobra.Command, args []string) error {
	strainID := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	endpoint := serverURL + "/api/v1/strains/" + url.PathEscape(strainID)
	if strainFresh {
		endpoint += "?fresh=true"
	}

	log.Printf("Requesting strain '%s' from %s...", strainID, serverURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := createHTTPClient().Do(req)
	if err != nil {
		return fmt.Errorf("failed to get strain: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // nolint:errcheck // safe to ignore in cleanup
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errors.HTTPBody
		if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Code == "" {
			return fmt.Errorf("server returned %s", resp.Status)
		}
		return fmt.Errorf("server returned %s: %s", apiErr.Code, apiErr.Message)
	}

	if strainJSONOutput {
		_, err := os.Stdout.Write(body)
		return err
	}

	var strain web.StrainResponse
	if err := json.Unmarshal(body, &strain); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if strain.StrainView == nil {
		return fmt.Errorf("server returned an empty strain view")
	}

	fmt.Printf("Strain %s", strain.ID)
	if strain.FromCache {
		fmt.Printf(" (cached)")
	}
	fmt.Println()

	if strain.Desc != "" {
		fmt.Printf("\nDescription:\n%s\n", strain.Desc)
	}

	fmt.Printf("\nFlavors: %s\n", strain.Flavors)
	fmt.Printf("\nEffects:\n")
	fmt.Printf("  Medical:  %s\n", strain.Effects.Medical)
	fmt.Printf("  Positive: %s\n", strain.Effects.Positive)
	fmt.Printf("  Negative: %s\n", strain.Effects.Negative)

	if keys := strain.ExtraKeys(); len(keys) > 0 {
		fmt.Printf("\nMore:\n")
		for _, k := range keys {
			fmt.Printf("  %s: %v\n", k, strain.Extra[k])
		}
	}

	return nil
}
