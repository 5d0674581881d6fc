package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/catsocial/internal/rpc"
	"github.com/dmitrijs2005/catsocial/internal/server/models"
	"github.com/spf13/cobra"
)

func (a *App) registerCommand() *cobra.Command {
	var username, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if username == "" {
				if username, err = GetSimpleText(a.reader, "Enter user name", a.out); err != nil {
					return err
				}
			}
			if email == "" {
				if email, err = GetSimpleText(a.reader, "Enter email", a.out); err != nil {
					return err
				}
			}
			pw, err := getPassword(a.out)
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			token, err := a.client.Register(ctx, username, HashPassword(pw), email)
			if err != nil {
				return err
			}
			if err := a.saveSession(token); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Registered as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "user name (4-32 letters, digits or underscores)")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	return cmd
}

func (a *App) loginCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if email == "" {
				if email, err = GetSimpleText(a.reader, "Enter email", a.out); err != nil {
					return err
				}
			}
			pw, err := getPassword(a.out)
			if err != nil {
				return err
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			resp, err := a.client.Login(ctx, email, HashPassword(pw))
			if err != nil {
				return err
			}
			if err := a.saveSession(resp.Token); err != nil {
				return err
			}
			if resp.Profile != nil {
				fmt.Fprintf(a.out, "Logged in as %s\n", resp.Profile.UserName)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	return cmd
}

func (a *App) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.tokens.Clear()
		},
	}
}

func (a *App) profileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile [username]",
		Short: "Show a profile, your own by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := ""
			if len(args) == 1 {
				username = args[0]
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			p, err := a.client.GetProfile(ctx, username)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.printJSON(p)
			}
			a.printProfile(p)
			return nil
		},
	}
}

func (a *App) followCommand(action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <username>",
		Short: strings.ToUpper(action[:1]) + action[1:] + " a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			res, err := a.client.FollowUser(ctx, args[0], action)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.printJSON(res)
			}
			fmt.Fprintf(a.out, "%s %s (followers: %d)\n", res.Status, args[0], res.FollowerCount)
			return nil
		},
	}
}

func (a *App) followListCommand(which string) *cobra.Command {
	var page rpc.PageRequest

	cmd := &cobra.Command{
		Use:   which,
		Short: "List your " + which,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			list := a.client.ListFollowers
			if which == "following" {
				list = a.client.ListFollowing
			}
			p, err := list(ctx, page)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.printJSON(p)
			}
			for _, f := range p.Items {
				fmt.Fprintf(a.out, "%-32s since %s\n", f.Profile.UserName, f.FollowedAt.Format("2006-01-02 15:04"))
			}
			a.printNext(p.NextCursor)
			return nil
		},
	}
	addPageFlags(cmd, &page)
	return cmd
}

func (a *App) postCommand() *cobra.Command {
	var (
		req      rpc.CreateCatRequest
		lat, lon float64
	)

	cmd := &cobra.Command{
		Use:   "post <image-file>",
		Short: "Post a cat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			req.Image = image
			if cmd.Flags().Changed("lat") {
				req.Latitude = &lat
			}
			if cmd.Flags().Changed("lon") {
				req.Longitude = &lon
			}

			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			res, err := a.client.CreateCat(ctx, &req)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.printJSON(res)
			}
			fmt.Fprintf(a.out, "Posted %s\n", res.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "cat name")
	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "description")
	cmd.Flags().StringSliceVarP(&req.Tags, "tag", "t", nil, "tag, may be repeated")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *App) feedCommand() *cobra.Command {
	var req rpc.ListCatsRequest

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "List cats, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			p, err := a.client.ListCats(ctx, &req)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.printJSON(p)
			}
			for _, c := range p.Items {
				a.printCat(c)
			}
			a.printNext(p.NextCursor)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Username, "user", "u", "", "only cats of this user")
	addPageFlags(cmd, &req.PageRequest)
	return cmd
}

func (a *App) likeCommand(action string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <cat-id>",
		Short: strings.ToUpper(action[:1]) + action[1:] + " a cat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.withTimeout(cmd.Context())
			defer cancel()

			res, err := a.client.LikeCat(ctx, args[0], action)
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return a.printJSON(res)
			}
			fmt.Fprintf(a.out, "%s: %d likes\n", args[0], res.Likes)
			return nil
		},
	}
}

func addPageFlags(cmd *cobra.Command, page *rpc.PageRequest) {
	cmd.Flags().IntVarP(&page.Limit, "limit", "l", 0, "page size (0 = server default)")
	cmd.Flags().StringVar(&page.Cursor, "cursor", "", "cursor printed by the previous page")
}

func (a *App) printNext(cursor string) {
	if cursor != "" {
		fmt.Fprintf(a.out, "\nmore: --cursor %s\n", cursor)
	}
}

func (a *App) printProfile(p *models.Profile) {
	fmt.Fprintf(a.out, "User:      %s\n", p.UserName)
	if p.Guest {
		return
	}
	fmt.Fprintf(a.out, "Bio:       %s\n", p.Bio)
	fmt.Fprintf(a.out, "Posts:     %d\n", p.PostCount)
	fmt.Fprintf(a.out, "Followers: %d\n", p.FollowerCount)
	fmt.Fprintf(a.out, "Following: %d\n", p.FollowingCount)
	if p.Followed {
		fmt.Fprintln(a.out, "You follow this user")
	}
}

func (a *App) printCat(c models.CatView) {
	liked := ""
	if c.Liked {
		liked = " (liked)"
	}
	fmt.Fprintf(a.out, "%s  %-20s by %-16s %d likes%s\n", c.ID, c.Name, c.Owner.UserName, c.Likes, liked)
	if len(c.Tags) > 0 {
		fmt.Fprintf(a.out, "    #%s\n", strings.Join(c.Tags, " #"))
	}
}

// getPassword is a test seam for GetPassword.
var getPassword = GetPassword
