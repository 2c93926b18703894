package core

import (
	"context"
	"fmt"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"container-os/internal/ports"
	"container-os/internal/types"
)

// SourceTag composes the concrete tag an alias points to.
func SourceTag(release string, osName string, aliasPatch string, engine string) string {
	return fmt.Sprintf("%s-%s-%s-%s", release, osName, aliasPatch, engine)
}

// PlanAliases computes the alias re-points for every channel whose target
// exists, in channel order. Channels pointing at unknown targets are
// returned separately.
func PlanAliases(doc types.TargetsDocument) ([]types.AliasPlan, []types.SkippedChannel) {
	var plans []types.AliasPlan
	var skipped []types.SkippedChannel
	for _, alias := range doc.ChannelNames() {
		entry := doc.Channels[alias]
		meta, ok := doc.Target(entry.OS, entry.Version)
		if !ok || entry.Version == "" {
			skipped = append(skipped, types.SkippedChannel{
				Alias:  alias,
				Reason: fmt.Sprintf("target %s %s not found", entry.OS, entry.Version),
			})
			continue
		}
		plans = append(plans, types.AliasPlan{
			Alias:     alias,
			SourceTag: SourceTag(doc.Version, entry.OS, meta.AliasPatch, entry.Engine),
		})
	}
	return plans, skipped
}

// Publisher re-points channel aliases in the registry.
type Publisher struct {
	Aliases  ports.TagAliasPort
	Policy   RetryPolicy
	Throttle time.Duration
	Sleep    SleepFunc
}

func NewPublisher(aliases ports.TagAliasPort, policy RetryPolicy, throttle time.Duration) Publisher {
	return Publisher{
		Aliases:  aliases,
		Policy:   policy,
		Throttle: throttle,
		Sleep:    policy.Sleep,
	}
}

// Publish re-points every planned alias. Unknown targets are skipped with
// a warning. The first alias that cannot be re-pointed stops the run with
// a *types.PublishError; aliases applied before it stay applied.
func (p Publisher) Publish(ctx context.Context, repository string, doc types.TargetsDocument) (types.PublishResult, error) {
	assert.NotEmpty(ctx, repository, "repository must be set")
	assert.NotEmpty(ctx, doc.Version, "release version must be set")
	plans, skipped := PlanAliases(doc)
	result := types.PublishResult{Skipped: skipped}
	for _, skip := range skipped {
		log.Warn().
			Str("alias", skip.Alias).
			Str("reason", skip.Reason).
			Msg("skipping channel alias")
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	for i, plan := range plans {
		if i > 0 && p.Throttle > 0 {
			if err := sleep(ctx, p.Throttle); err != nil {
				return result, &types.PublishError{Alias: plan.Alias, SourceTag: plan.SourceTag, Cause: err}
			}
		}
		attempts, err := p.Policy.Do(ctx, func(attempt int) error {
			err := p.Aliases.CreateTagAlias(ctx, repository, plan.Alias, plan.SourceTag)
			if err != nil && IsRateLimited(err) && attempt < p.Policy.MaxAttempts {
				log.Warn().
					Str("alias", plan.Alias).
					Int("attempt", attempt).
					Int("max_attempts", p.Policy.MaxAttempts).
					Msg("registry rate limited tag alias; backing off")
			}
			return err
		})
		if err != nil {
			return result, &types.PublishError{
				Alias:     plan.Alias,
				SourceTag: plan.SourceTag,
				Attempts:  attempts,
				Cause:     err,
			}
		}
		log.Info().
			Str("alias", fmt.Sprintf("%s:%s", repository, plan.Alias)).
			Str("source", fmt.Sprintf("%s:%s", repository, plan.SourceTag)).
			Msg("tag alias updated")
		result.Applied = append(result.Applied, plan)
	}
	return result, nil
}
