package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/totegamma/nameless-go"
	"github.com/totegamma/nameless-go/api"
	"github.com/totegamma/nameless-go/cachestore"
	"github.com/totegamma/nameless-go/client"
	"github.com/totegamma/nameless-go/internal/config"
	"github.com/totegamma/nameless-go/internal/tracing"
	invalidation "github.com/totegamma/nameless-go/signal"
)

var (
	configPath string
	verbose    bool
)

type app struct {
	api  *api.API
	conf config.Config
	rdb  *redis.Client
	stop func(context.Context) error
}

func setup(ctx context.Context) (*app, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	a := &app{conf: conf, stop: func(context.Context) error { return nil }}

	if conf.Trace.Enable {
		stop, err := tracing.Setup(ctx, "nameless-cli", conf.Trace.Endpoint)
		if err != nil {
			return nil, err
		}
		a.stop = stop
	}

	if conf.Cache.RedisAddr != "" {
		a.rdb = cachestore.NewRedisClient(conf.Cache.RedisAddr, conf.Cache.RedisPassword, conf.Cache.RedisDB)
	}

	opts := []api.Option{api.WithLogger(logger)}
	switch conf.Cache.Backend {
	case config.BackendRedis:
		opts = append(opts, api.WithResponseCache(cachestore.NewRedis(a.rdb), conf.Cache.TTL))
	case config.BackendSharded:
		opts = append(opts, api.WithResponseCache(cachestore.NewSharded(conf.Cache.Capacity, 0, conf.Cache.TTL), conf.Cache.TTL))
	case config.BackendMemcached:
		opts = append(opts, api.WithResponseCache(cachestore.NewMemcached(conf.Cache.MemcachedAddr), conf.Cache.TTL))
	case config.BackendNone:
		opts = append(opts, api.WithResponseCache(nil, 0))
	default:
		opts = append(opts, api.WithResponseCache(cachestore.NewMemory(conf.Cache.TTL, 2*conf.Cache.TTL), conf.Cache.TTL))
	}
	if conf.API.Strict {
		opts = append(opts, api.WithStrictIdentifiers())
	}
	if conf.Signal.RedisChannel != "" {
		pub := invalidation.NewRedisPublisher(a.rdb, conf.Signal.RedisChannel, conf.Signal.Source)
		opts = append(opts, api.WithInvalidationHook(pub.Invalidated))
	}

	a.api, err = api.NewFromConfig(client.Config{
		URL:       conf.API.URL,
		APIKey:    conf.API.Key,
		UserAgent: conf.API.UserAgent,
		Timeout:   conf.API.Timeout,
		Logger:    logger,
	}, opts...)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.stop(ctx); err != nil {
		slog.Warn("failed to stop tracer", "error", err)
	}
	if a.rdb != nil {
		a.rdb.Close()
	}
}

// run wraps a command body with setup and teardown.
func run(fn func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := setup(ctx)
		if err != nil {
			return err
		}
		defer a.close(context.Background())
		return fn(ctx, a, args)
	}
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid group id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func userHandle(a *app, arg string) (*api.User, error) {
	id, err := nameless.ParseIdentifier(arg)
	if err != nil {
		return nil, err
	}
	return a.api.User(id), nil
}

func main() {
	root := &cobra.Command{
		Use:           "nameless",
		Short:         "Query and manage a NamelessMC website from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "nameless.yaml", "path to config file")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests")

	root.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show website information",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			info, err := a.api.Info(ctx)
			if err != nil {
				return err
			}
			nameless.JsonPrint(os.Stdout, "", info)
			return nil
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "groups",
		Short: "List groups",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			groups, err := a.api.Groups(ctx)
			if err != nil {
				return err
			}
			nameless.JsonPrint(os.Stdout, "", groups)
			return nil
		}),
	})

	root.AddCommand(usersCommand(), userCommand(), websendCommand(), watchCommand())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		cancel()
		os.Exit(1)
	}
}

func usersCommand() *cobra.Command {
	var (
		group       int64
		integration string
		limit       int
		verified    bool
		banned      bool
		matchAny    bool
	)
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users matching filters",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			var filters []api.UserFilter
			if group > 0 {
				filters = append(filters, api.FilterGroup(group))
			}
			if integration != "" {
				filters = append(filters, api.FilterIntegration(integration))
			}
			if verified {
				filters = append(filters, api.FilterVerified(true))
			}
			if banned {
				filters = append(filters, api.FilterBanned(true))
			}
			if matchAny {
				filters = append(filters, api.WithOperator(api.OperatorOr))
			}
			if limit > 0 {
				filters = append(filters, api.Limit(limit))
			}

			users, err := a.api.Users(ctx, filters...)
			if err != nil {
				return err
			}
			for _, u := range users {
				info, err := u.Info(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("%s\t%s\n", u.Identifier(), info.Username)
			}
			return nil
		}),
	}
	cmd.Flags().Int64Var(&group, "group", 0, "only users in this group")
	cmd.Flags().StringVar(&integration, "integration", "", "only users with this integration linked")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of users")
	cmd.Flags().BoolVar(&verified, "verified", false, "only verified users")
	cmd.Flags().BoolVar(&banned, "banned", false, "only banned users")
	cmd.Flags().BoolVar(&matchAny, "any", false, "match any filter instead of all")
	return cmd
}

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user <identifier>",
		Short: "Show a user, e.g. id:1, username:alice or integration_id:Minecraft:<uuid>",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			u, err := userHandle(a, args[0])
			if err != nil {
				return err
			}
			info, err := u.Info(ctx)
			if err != nil {
				return err
			}
			nameless.JsonPrint(os.Stdout, u.Identifier().String(), info)
			return nil
		}),
	}

	groupCmd := func(use, short string, apply func(*api.User, context.Context, ...int64) error) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <identifier> <group id>...",
			Short: short,
			Args:  cobra.MinimumNArgs(2),
			RunE: run(func(ctx context.Context, a *app, args []string) error {
				u, err := userHandle(a, args[0])
				if err != nil {
					return err
				}
				ids, err := parseIDs(args[1:])
				if err != nil {
					return err
				}
				return apply(u, ctx, ids...)
			}),
		}
	}
	cmd.AddCommand(
		groupCmd("add-groups", "Add a user to groups", (*api.User).AddGroups),
		groupCmd("remove-groups", "Remove a user from groups", (*api.User).RemoveGroups),
	)
	return cmd
}

func websendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "websend",
		Short: "Websend module",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "commands <server id>",
		Short: "List pending commands for a server",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(ctx context.Context, a *app, args []string) error {
			serverID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid server id %q", args[0])
			}
			cmds, err := a.api.Websend().Commands(ctx, serverID)
			if err != nil {
				return err
			}
			nameless.JsonPrint(os.Stdout, "", cmds)
			return nil
		}),
	})
	return cmd
}

func watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print user invalidations published by other processes",
		RunE: run(func(ctx context.Context, a *app, _ []string) error {
			if a.conf.Signal.RedisChannel == "" {
				return fmt.Errorf("signal.redisChannel is not configured")
			}
			err := invalidation.Subscribe(ctx, a.rdb, a.conf.Signal.RedisChannel, func(ev invalidation.Event) {
				fmt.Printf("%s\t%s\t%s\t%s\n", ev.At.Format("15:04:05"), ev.Source, ev.Operation, ev.Identifier)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}),
	}
}
