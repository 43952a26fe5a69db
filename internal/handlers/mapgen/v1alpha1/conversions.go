package v1alpha1

import (
	"encoding/json"
	"math"
	"strconv"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-mapgen/internal/engine/sim"
	"github.com/KirkDiggler/rpg-mapgen/internal/errors"
	"github.com/KirkDiggler/rpg-mapgen/internal/generation"
	"github.com/KirkDiggler/rpg-mapgen/internal/orchestrators/maps"
)

// toStruct renders v through its json tags
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}

func navMeshToMap(nm sim.NavMeshSummary) map[string]any {
	return map[string]any{
		"map_id":  nm.MapID,
		"cells":   nm.Cells,
		"regions": nm.Regions,
	}
}

func stringField(st *structpb.Struct, name string) string {
	return st.GetFields()[name].GetStringValue()
}

func boolField(st *structpb.Struct, name string) bool {
	return st.GetFields()[name].GetBoolValue()
}

// Exclusive upper bounds as float64. MaxInt64 and MaxInt round up to a power
// of two, which is the first value that no longer converts.
const (
	int64Ceiling = float64(math.MaxInt64)
	intCeiling   = float64(math.MaxInt)
)

// integral reports whether n is a whole number in [floor, ceiling)
func integral(n, floor, ceiling float64) bool {
	return n == math.Trunc(n) && n >= floor && n < ceiling
}

func intField(st *structpb.Struct, name string) (int, error) {
	v, ok := st.GetFields()[name]
	if !ok {
		return 0, nil
	}
	n := v.GetNumberValue()
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber || !integral(n, math.MinInt, intCeiling) {
		return 0, errors.InvalidArgumentf("%s must be an integer", name)
	}
	return int(n), nil
}

func floatField(st *structpb.Struct, name string) (*float64, error) {
	v, ok := st.GetFields()[name]
	if !ok {
		return nil, nil
	}
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return nil, errors.InvalidArgumentf("%s must be a number", name)
	}
	n := v.GetNumberValue()
	return &n, nil
}

// seedField accepts a string so seeds above 2^53 survive the trip
func seedField(st *structpb.Struct, name string) (*int64, error) {
	v, ok := st.GetFields()[name]
	if !ok {
		return nil, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		seed, err := strconv.ParseInt(kind.StringValue, 10, 64)
		if err != nil {
			return nil, errors.InvalidArgumentf("%s is not a valid seed: %q", name, kind.StringValue)
		}
		return &seed, nil
	case *structpb.Value_NumberValue:
		if !integral(kind.NumberValue, math.MinInt64, int64Ceiling) {
			return nil, errors.InvalidArgumentf("%s must be a 64-bit integer", name)
		}
		seed := int64(kind.NumberValue)
		return &seed, nil
	default:
		return nil, errors.InvalidArgumentf("%s must be a string or a number", name)
	}
}

func overridesFromStruct(st *structpb.Struct) (*maps.SettingsOverrides, error) {
	if st == nil {
		return nil, nil
	}

	var (
		out = &maps.SettingsOverrides{}
		err error
	)
	if out.TargetRooms, err = intField(st, "target_rooms"); err != nil {
		return nil, err
	}
	if out.MaxIterations, err = intField(st, "max_iterations"); err != nil {
		return nil, err
	}
	if out.MaxRegenerations, err = intField(st, "max_regenerations"); err != nil {
		return nil, err
	}
	if out.RoomOdds, err = floatField(st, "room_odds"); err != nil {
		return nil, err
	}
	if out.ConnectRoomsOdds, err = floatField(st, "connect_rooms_odds"); err != nil {
		return nil, err
	}
	if out.Seed, err = seedField(st, "seed"); err != nil {
		return nil, err
	}
	if out.SpawnSeed, err = seedField(st, "spawn_seed"); err != nil {
		return nil, err
	}
	out.Strategy = generation.Strategy(stringField(st, "strategy"))

	return out, nil
}
