package config

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/hyperifyio/tsetlin/automaton"
	"github.com/hyperifyio/tsetlin/internal/errors"
	"github.com/hyperifyio/tsetlin/kernel"
)

// ParseKV parses a minimal key=value document, one assignment per line,
// blank lines and lines starting with '#' ignored, into an Options
// starting from Default(). It does not call Validate; callers should do
// that once parsing finishes.
func ParseKV(text string) (Options, error) {
	opt := Default()
	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return opt, errors.New(errors.BadJSON, "line %d: expected key=value, got %q", lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := applyKV(&opt, key, value); err != nil {
			code := errors.BadJSON
			if e, ok := err.(*errors.Error); ok {
				code = e.Code
			}
			return opt, errors.New(code, "line %d: %s", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return opt, errors.New(errors.BadJSON, "%s", err)
	}
	return opt, nil
}

func applyKV(opt *Options, key, value string) error {
	switch key {
	case "number_of_labels":
		return setInt32(&opt.NumberOfLabels, value)
	case "number_of_features":
		return setInt32(&opt.NumberOfFeatures, value)
	case "clauses_per_label":
		return setInt32(&opt.ClausesPerLabel, value)
	case "number_of_states":
		return setInt32(&opt.NumberOfStates, value)
	case "threshold":
		return setInt64(&opt.Threshold, value)
	case "specificity":
		return setFloat(&opt.Specificity, value)
	case "boost_true_positive_feedback":
		return setBool(&opt.BoostTruePositiveFeedback, value)
	case "weighted":
		return setBool(&opt.Weighted, value)
	case "max_weight":
		return setInt32(&opt.MaxWeight, value)
	case "counting_type":
		ct, err := parseCountingType(value)
		if err != nil {
			return err
		}
		opt.CountingType = ct
	case "clause_output_tile_size":
		return setIntField(&opt.ClauseOutputTileSize, value)
	case "n_jobs":
		return setIntField(&opt.NJobs, value)
	case "random_state":
		seed, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return err
		}
		v := uint32(seed)
		opt.RandomState = &v
	case "verbose":
		return setBool(&opt.Verbose, value)
	case "loss_kind":
		lk, err := parseLossKind(value)
		if err != nil {
			return err
		}
		opt.LossKind = lk
	case "loss_c1":
		return setFloat(&opt.LossC1, value)
	default:
		return errors.New(errors.ValueError, "unknown option %q", key)
	}
	return nil
}

func setInt32(dst *int32, value string) error {
	v, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return err
	}
	*dst = int32(v)
	return nil
}

func setInt64(dst *int64, value string) error {
	v, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func setIntField(dst *int, value string) error {
	v, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func setFloat(dst *float64, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func setBool(dst *bool, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func parseCountingType(value string) (automaton.CountingType, error) {
	switch value {
	case "auto":
		return automaton.CountingAuto, nil
	case "int8":
		return automaton.CountingI8, nil
	case "int16":
		return automaton.CountingI16, nil
	case "int32":
		return automaton.CountingI32, nil
	default:
		return automaton.CountingAuto, errors.New(errors.BadJSON, "unknown counting_type %q", value)
	}
}

func parseLossKind(value string) (kernel.LossKind, error) {
	switch value {
	case "l1":
		return kernel.LossL1, nil
	case "l2":
		return kernel.LossL2, nil
	case "berhu":
		return kernel.LossBerHu, nil
	case "convex":
		return kernel.LossConvex, nil
	default:
		return kernel.LossL1, errors.New(errors.BadJSON, "unknown loss_kind %q", value)
	}
}
