package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"focuslock/internal/bootstrap"
	commitmentdto "focuslock/internal/modules/commitment/dto"
	sessiondto "focuslock/internal/modules/session/dto"
	"focuslock/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string
	var actor string

	root := &cobra.Command{
		Use:           "focuslock",
		Short:         "Staked focus-session commitments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "data directory")
	root.PersistentFlags().StringVar(&actor, "actor", "", "acting identity (overrides config)")

	root.AddCommand(newInitCmd(&dataDir, &actor))
	root.AddCommand(newRegistryCmd(&dataDir, &actor))
	root.AddCommand(newProfileCmd(&dataDir, &actor))
	root.AddCommand(newFundCmd(&dataDir, &actor))
	root.AddCommand(newBalanceCmd(&dataDir, &actor))
	root.AddCommand(newCommitmentCmd(&dataDir, &actor))
	root.AddCommand(newSessionCmd(&dataDir, &actor))
	root.AddCommand(newAttestorCmd(&dataDir, &actor))
	root.AddCommand(newServeCmd(&dataDir, &actor))
	root.AddCommand(newTUICmd(&dataDir, &actor))
	return root
}

func loadApp(dataDir, actor string) (*bootstrap.App, string, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, "", err
	}
	if actor != "" {
		cfg.Actor = actor
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, "", err
	}
	return app, cfg.Actor, nil
}

func requireActor(actor string) error {
	if actor == "" {
		return fmt.Errorf("an acting identity is required: pass --actor or set actor in config.yaml")
	}
	return nil
}

func newInitCmd(dataDir, actor *string) *cobra.Command {
	var assetID string
	var rewardRate uint64

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the protocol registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireActor(who); err != nil {
				return err
			}
			out, err := app.RegistryCLI.Init(context.Background(), who, assetID, rewardRate)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "registry initialized: asset=%s reward=%d%% authority=%s\n",
				out.AssetID, out.RewardRatePercent, out.Authority)
			return nil
		},
	}
	cmd.Flags().StringVar(&assetID, "asset", "FOCUS", "staked asset identifier")
	cmd.Flags().Uint64Var(&rewardRate, "reward-rate", 10, "bonus percentage for full completion")
	return cmd
}

func newRegistryCmd(dataDir, actor *string) *cobra.Command {
	registry := &cobra.Command{Use: "registry", Short: "Inspect the protocol registry"}

	registry.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show registry totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.RegistryCLI.Get(context.Background())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "asset:         %s\n", out.AssetID)
			_, _ = fmt.Fprintf(w, "authority:     %s\n", out.Authority)
			_, _ = fmt.Fprintf(w, "reward rate:   %d%%\n", out.RewardRatePercent)
			_, _ = fmt.Fprintf(w, "participants:  %d\n", out.TotalParticipants)
			_, _ = fmt.Fprintf(w, "value staked:  %d\n", out.TotalValueStaked)
			return nil
		},
	})
	return registry
}

func newProfileCmd(dataDir, actor *string) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Manage participant profiles"}

	profile.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a profile for the acting identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireActor(who); err != nil {
				return err
			}
			out, err := app.ProfileCLI.Create(context.Background(), who)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile created for %s\n", out.Owner)
			return nil
		},
	})

	profile.AddCommand(&cobra.Command{
		Use:   "show [owner]",
		Short: "Show a profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			owner := who
			if len(args) == 1 {
				owner = args[0]
			}
			if err := requireActor(owner); err != nil {
				return err
			}
			out, err := app.ProfileCLI.Get(context.Background(), owner)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "owner:     %s\n", out.Owner)
			_, _ = fmt.Fprintf(w, "sessions:  %d\n", out.TotalSessionsCompleted)
			_, _ = fmt.Fprintf(w, "rewards:   %d\n", out.TotalRewardsEarned)
			_, _ = fmt.Fprintf(w, "streak:    %d (best %d)\n", out.CurrentStreak, out.BestStreak)
			return nil
		},
	})
	return profile
}

func newFundCmd(dataDir, actor *string) *cobra.Command {
	var amount uint64

	cmd := &cobra.Command{
		Use:   "fund [address]",
		Short: "Credit an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			address := who
			if len(args) == 1 {
				address = args[0]
			}
			if err := requireActor(address); err != nil {
				return err
			}
			out, err := app.TreasuryCLI.Fund(context.Background(), address, amount)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s balance: %d\n", out.Address, out.Balance)
			return nil
		},
	}
	cmd.Flags().Uint64Var(&amount, "amount", 0, "amount to credit")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newBalanceCmd(dataDir, actor *string) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Show an account balance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			address := who
			if len(args) == 1 {
				address = args[0]
			}
			if err := requireActor(address); err != nil {
				return err
			}
			out, err := app.TreasuryCLI.Balance(context.Background(), address)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s balance: %d\n", out.Address, out.Balance)
			return nil
		},
	}
}

func newCommitmentCmd(dataDir, actor *string) *cobra.Command {
	commitment := &cobra.Command{Use: "commitment", Short: "Manage staked commitments"}

	var id, amount uint64
	var sessionsPerDay, totalDays uint8

	openCmd := &cobra.Command{
		Use:   "open",
		Short: "Stake on a new focus schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireActor(who); err != nil {
				return err
			}
			out, err := app.CommitmentCLI.Open(context.Background(), who, id, amount, sessionsPerDay, totalDays)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitment #%d opened: stake=%d schedule=%d/day for %d days, ends %s\n",
				out.CommitmentID, out.AmountStaked, out.SessionsPerDay, out.TotalDays,
				out.EndTimestamp.Format(time.RFC3339))
			return nil
		},
	}
	openCmd.Flags().Uint64Var(&id, "id", 0, "commitment id")
	openCmd.Flags().Uint64Var(&amount, "amount", 0, "stake amount")
	openCmd.Flags().Uint8Var(&sessionsPerDay, "sessions-per-day", 0, "sessions per day (1-10)")
	openCmd.Flags().Uint8Var(&totalDays, "days", 0, "total days (1-30)")
	_ = openCmd.MarkFlagRequired("id")
	_ = openCmd.MarkFlagRequired("amount")
	_ = openCmd.MarkFlagRequired("sessions-per-day")
	_ = openCmd.MarkFlagRequired("days")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List commitments for the acting identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireActor(who); err != nil {
				return err
			}
			outs, err := app.CommitmentCLI.List(context.Background(), who)
			if err != nil {
				return err
			}
			for _, out := range outs {
				printCommitment(cmd, out)
			}
			return nil
		},
	}

	var showID uint64
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show one commitment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireActor(who); err != nil {
				return err
			}
			out, err := app.CommitmentCLI.Get(context.Background(), who, showID)
			if err != nil {
				return err
			}
			printCommitment(cmd, out)
			return nil
		},
	}
	showCmd.Flags().Uint64Var(&showID, "id", 0, "commitment id")
	_ = showCmd.MarkFlagRequired("id")

	var claimID uint64
	claimCmd := &cobra.Command{
		Use:   "claim",
		Short: "Settle an ended commitment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireActor(who); err != nil {
				return err
			}
			out, err := app.CommitmentCLI.Claim(context.Background(), who, claimID, who)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitment #%d settled: tier=%s completed=%d/%d payout=%d retained=%d\n",
				out.CommitmentID, out.Tier, out.Completed, out.Required, out.Payout, out.Retained)
			return nil
		},
	}
	claimCmd.Flags().Uint64Var(&claimID, "id", 0, "commitment id")
	_ = claimCmd.MarkFlagRequired("id")

	commitment.AddCommand(openCmd, listCmd, showCmd, claimCmd)
	return commitment
}

func printCommitment(cmd *cobra.Command, out commitmentdto.CommitmentOutput) {
	status := "active"
	if !out.IsActive {
		status = "settled"
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d [%s] stake=%d schedule=%d/day×%dd done=%d today=%d/%d ends=%s\n",
		out.CommitmentID, status, out.AmountStaked, out.SessionsPerDay, out.TotalDays,
		out.TotalSessionsCompleted, out.SessionsCompletedToday, out.SessionsPerDay,
		out.EndTimestamp.Format(time.RFC3339))
}

func newSessionCmd(dataDir, actor *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Run focus sessions"}

	var commitmentID, sessionID uint64

	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireActor(who); err != nil {
				return err
			}
			out, err := app.SessionCLI.Start(context.Background(), who, commitmentID, sessionID, who)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session #%d started at %s\n",
				out.SessionID, out.StartedAt.Format(time.RFC3339))
			return nil
		},
	}
	startCmd.Flags().Uint64Var(&commitmentID, "commitment", 0, "commitment id")
	startCmd.Flags().Uint64Var(&sessionID, "id", 0, "session id")
	_ = startCmd.MarkFlagRequired("commitment")
	_ = startCmd.MarkFlagRequired("id")

	var completeCommitment, completeID uint64
	completeCmd := &cobra.Command{
		Use:   "complete",
		Short: "Complete a focus session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireActor(who); err != nil {
				return err
			}
			out, err := app.SessionCLI.Complete(context.Background(), who, completeCommitment, completeID, who)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session #%d complete (%s): today=%d days=%d streak=%d\n",
				out.SessionID,
				out.EndedAt.Sub(out.StartedAt).Round(time.Minute),
				out.SessionsCompletedToday, out.DaysCompleted, out.CurrentStreak)
			return nil
		},
	}
	completeCmd.Flags().Uint64Var(&completeCommitment, "commitment", 0, "commitment id")
	completeCmd.Flags().Uint64Var(&completeID, "id", 0, "session id")
	_ = completeCmd.MarkFlagRequired("commitment")
	_ = completeCmd.MarkFlagRequired("id")

	var listCommitment uint64
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions for a commitment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireActor(who); err != nil {
				return err
			}
			outs, err := app.SessionCLI.List(context.Background(), who, listCommitment)
			if err != nil {
				return err
			}
			for _, out := range outs {
				printSession(cmd, out)
			}
			return nil
		},
	}
	listCmd.Flags().Uint64Var(&listCommitment, "commitment", 0, "commitment id")
	_ = listCmd.MarkFlagRequired("commitment")

	session.AddCommand(startCmd, completeCmd, listCmd)
	return session
}

func printSession(cmd *cobra.Command, out sessiondto.SessionOutput) {
	status := "open"
	length := "-"
	if out.Completed {
		status = "done"
		length = out.EndedAt.Sub(out.StartedAt).Round(time.Minute).String()
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "#%d [%s] started=%s length=%s\n",
		out.SessionID, status, out.StartedAt.Format(time.RFC3339), length)
}

func newAttestorCmd(dataDir, actor *string) *cobra.Command {
	attestor := &cobra.Command{Use: "attestor", Short: "Manage session attestors"}

	attestor.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured attestors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			outs, err := app.AttestCLI.List(context.Background())
			if err != nil {
				return err
			}
			for _, out := range outs {
				state := "disabled"
				if out.Enabled {
					state = "enabled"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s [%s] %s\n", out.Name, out.Version, state, out.Binary)
			}
			return nil
		},
	})

	attestor.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Probe attestor binaries and lifecycles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			outs, err := app.AttestCLI.Check(context.Background())
			if err != nil {
				return err
			}
			for _, out := range outs {
				if out.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: FAIL %s\n", out.Name, out.Error)
					continue
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (binary=%t checksum=%t lifecycle=%t)\n",
					out.Name, out.BinaryReachable, out.ChecksumValid, out.LifecycleOK)
			}
			return nil
		},
	})
	return attestor
}

func newServeCmd(dataDir, actor *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunHTTP(app)
		},
	}
}

func newTUICmd(dataDir, actor *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focuslock dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, who, err := loadApp(*dataDir, *actor)
			if err != nil {
				return err
			}
			defer app.Close()
			if err := requireActor(who); err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}
