package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndrewBarba/specli/internal/introspect"
	"github.com/AndrewBarba/specli/internal/request"
)

var errNoToken = errors.New("no token provided: pass it as an argument or pipe it on stdin")

// newLoginCommand implements the `login [token] [--profile name] [--server
// url]` built-in: stores a bearer token (read from stdin when token is
// omitted, for non-interactive automation) and upserts the profile's server.
func newLoginCommand(inv *invoker) *cobra.Command {
	var profileName, server string
	cmd := &cobra.Command{
		Use:   "login [token]",
		Short: "Store a bearer token for a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if inv.cfg.ProfileStore == nil {
				inv.runError(cmd, "no profile store configured")
				return nil
			}

			token, err := resolveLoginToken(cmd, args)
			if err != nil {
				inv.runError(cmd, err.Error())
				return nil
			}

			specID := inv.cfg.Loaded.SpecID
			ctx := context.Background()
			profile := request.Profile{Name: profileName, Server: server}
			if server == "" {
				// Refreshing a token shouldn't blank out a server already
				// configured on this profile.
				if existing, err := inv.cfg.ProfileStore.GetProfileForSpec(ctx, specID, profileName); err == nil && existing != nil {
					profile.Server = existing.Server
					profile.AuthScheme = existing.AuthScheme
				}
			}
			if err := inv.cfg.ProfileStore.SaveProfile(ctx, specID, profile); err != nil {
				inv.runError(cmd, err.Error())
				return nil
			}
			if err := inv.cfg.ProfileStore.SaveToken(ctx, specID, profileName, token); err != nil {
				inv.runError(cmd, err.Error())
				return nil
			}
			inv.runData(cmd, "login", map[string]any{"specId": specID, "profile": profileName, "stored": true})
			return nil
		},
	}
	cmd.Flags().StringVar(&profileName, "profile", "", "Profile to store the token under (default profile if omitted)")
	cmd.Flags().StringVar(&server, "server", "", "Server URL to associate with this profile")
	return cmd
}

func resolveLoginToken(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", errNoToken
	}
	return token, nil
}

// newLogoutCommand implements the `logout [--profile name]` built-in:
// deletes the stored token for the named (or default) profile.
func newLogoutCommand(inv *invoker) *cobra.Command {
	var profileName string
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored token for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inv.cfg.ProfileStore == nil {
				inv.runError(cmd, "no profile store configured")
				return nil
			}
			specID := inv.cfg.Loaded.SpecID
			if err := inv.cfg.ProfileStore.DeleteToken(context.Background(), specID, profileName); err != nil {
				inv.runError(cmd, err.Error())
				return nil
			}
			inv.runData(cmd, "logout", map[string]any{"specId": specID, "profile": profileName, "stored": false})
			return nil
		},
	}
	cmd.Flags().StringVar(&profileName, "profile", "", "Profile to log out of (default profile if omitted)")
	return cmd
}

// newWhoamiCommand implements the `whoami [--profile name]` built-in:
// reports the resolved profile's server and whether a token is stored,
// never the token value itself.
func newWhoamiCommand(inv *invoker) *cobra.Command {
	var profileName string
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the resolved spec identity and profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			specID := inv.cfg.Loaded.SpecID
			data := map[string]any{
				"specId":      specID,
				"fingerprint": inv.cfg.Loaded.Fingerprint,
				"origin":      inv.cfg.Loaded.Origin,
				"profile":     profileName,
			}
			if inv.cfg.ProfileStore != nil {
				if profile, _ := inv.cfg.ProfileStore.GetProfileForSpec(context.Background(), specID, profileName); profile != nil {
					data["server"] = profile.Server
					data["authScheme"] = profile.AuthScheme
				}
				token, _ := inv.cfg.ProfileStore.GetToken(specID, profileName)
				data["tokenStored"] = token != ""

				if all, def, err := inv.cfg.ProfileStore.ReadProfilesForSpec(context.Background(), specID); err == nil {
					names := make([]string, 0, len(all))
					for _, p := range all {
						names = append(names, p.Name)
					}
					data["profiles"] = names
					if def != nil {
						data["defaultProfile"] = def.Name
					}
				}
			}
			inv.runData(cmd, "whoami", data)
			return nil
		},
	}
	cmd.Flags().StringVar(&profileName, "profile", "", "Profile to inspect (default profile if omitted)")
	return cmd
}

// newSchemaCommand implements the `__schema` built-in (§4.11): the full
// introspection record, or its --minimal variant.
func newSchemaCommand(inv *invoker) *cobra.Command {
	var minimal bool
	cmd := &cobra.Command{
		Use:   "__schema",
		Short: "Print the derived command schema for this spec",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := introspect.Input{
				Loaded:     inv.cfg.Loaded,
				Servers:    inv.cfg.Servers,
				Auth:       inv.cfg.AuthRegistry,
				Operations: inv.cfg.Operations,
				Planned:    inv.cfg.Planned,
				Model:      inv.cfg.Model,
			}
			var doc map[string]any
			if minimal {
				doc = introspect.Minimal(in)
			} else {
				doc = introspect.Full(in)
			}
			inv.runData(cmd, "schema", doc)
			return nil
		},
	}
	cmd.Flags().BoolVar(&minimal, "minimal", false, "Omit operations, planned, and the command id index")
	return cmd
}
