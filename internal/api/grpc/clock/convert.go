package clock

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	domain "github.com/oshokin/hydration-clock/internal/domain/alarm"
)

// Struct field names used on the wire.
const (
	fieldIndex            = "index"
	fieldTime             = "time"
	fieldArmed            = "armed"
	fieldNow              = "now"
	fieldRemindersEnabled = "reminders_enabled"
	fieldAlarms           = "alarms"
)

var (
	// errMissingField is returned when a required struct field is absent.
	errMissingField = errors.New("missing field")
	// errFieldType is returned when a struct field has the wrong kind.
	errFieldType = errors.New("wrong field type")
	// errBadIndex is returned for a non-integral or overflowing index.
	errBadIndex = errors.New("index must be a whole number")
)

// EditRequest builds the EditAlarm payload.
func EditRequest(index int, at domain.TimeOfDay) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldIndex: structpb.NewNumberValue(float64(index)),
			fieldTime:  structpb.NewStringValue(at.String()),
		},
	}
}

// ArmRequest builds the SetAlarmArmed payload.
func ArmRequest(index int, armed bool) *structpb.Struct {
	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldIndex: structpb.NewNumberValue(float64(index)),
			fieldArmed: structpb.NewBoolValue(armed),
		},
	}
}

// parseEditRequest extracts index and time from an EditAlarm payload.
func parseEditRequest(req *structpb.Struct) (int, domain.TimeOfDay, error) {
	index, err := indexField(req)
	if err != nil {
		return 0, domain.TimeOfDay{}, err
	}

	text, err := stringField(req, fieldTime)
	if err != nil {
		return 0, domain.TimeOfDay{}, err
	}

	at, err := domain.ParseTimeOfDay(text)
	if err != nil {
		return 0, domain.TimeOfDay{}, err
	}

	return index, at, nil
}

// parseArmRequest extracts index and armed flag from a SetAlarmArmed payload.
func parseArmRequest(req *structpb.Struct) (int, bool, error) {
	index, err := indexField(req)
	if err != nil {
		return 0, false, err
	}

	value, ok := req.GetFields()[fieldArmed]
	if !ok {
		return 0, false, fmt.Errorf("%w: %s", errMissingField, fieldArmed)
	}

	armed, ok := value.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return 0, false, fmt.Errorf("%w: %s must be a bool", errFieldType, fieldArmed)
	}

	return index, armed.BoolValue, nil
}

// StatusToProto encodes a status view.
func StatusToProto(status domain.Status) *structpb.Struct {
	alarms := make([]*structpb.Value, 0, len(status.Alarms))
	for _, entry := range status.Alarms {
		alarms = append(alarms, structpb.NewStructValue(&structpb.Struct{
			Fields: map[string]*structpb.Value{
				fieldIndex: structpb.NewNumberValue(float64(entry.Index)),
				fieldTime:  structpb.NewStringValue(entry.Alarm.Time.String()),
				fieldArmed: structpb.NewBoolValue(entry.Alarm.Armed),
			},
		}))
	}

	return &structpb.Struct{
		Fields: map[string]*structpb.Value{
			fieldNow:              structpb.NewStringValue(status.Now.String()),
			fieldRemindersEnabled: structpb.NewBoolValue(status.RemindersEnabled),
			fieldAlarms:           structpb.NewListValue(&structpb.ListValue{Values: alarms}),
		},
	}
}

// StatusFromProto decodes a status view.
func StatusFromProto(msg *structpb.Struct) (domain.Status, error) {
	var status domain.Status

	nowText, err := stringField(msg, fieldNow)
	if err != nil {
		return status, err
	}

	if status.Now, err = domain.ParseTimeOfDay(nowText); err != nil {
		return status, err
	}

	status.RemindersEnabled = msg.GetFields()[fieldRemindersEnabled].GetBoolValue()

	for _, item := range msg.GetFields()[fieldAlarms].GetListValue().GetValues() {
		fields := item.GetStructValue()
		if fields == nil {
			return status, fmt.Errorf("%w: %s entries must be objects", errFieldType, fieldAlarms)
		}

		index, err := indexField(fields)
		if err != nil {
			return status, err
		}

		timeText, err := stringField(fields, fieldTime)
		if err != nil {
			return status, err
		}

		at, err := domain.ParseTimeOfDay(timeText)
		if err != nil {
			return status, err
		}

		status.Alarms = append(status.Alarms, domain.Entry{
			Index: index,
			Alarm: domain.Alarm{
				Time:  at,
				Armed: fields.GetFields()[fieldArmed].GetBoolValue(),
			},
		})
	}

	return status, nil
}

func indexField(msg *structpb.Struct) (int, error) {
	value, ok := msg.GetFields()[fieldIndex]
	if !ok {
		return 0, fmt.Errorf("%w: %s", errMissingField, fieldIndex)
	}

	number, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be a number", errFieldType, fieldIndex)
	}

	return indexFromFloat(number.NumberValue)
}

func indexFromFloat(f float64) (int, error) {
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v", errBadIndex, f)
	}

	return int(f), nil
}

func indexFromInt64(i int64) (int, error) {
	if i > math.MaxInt32 || i < math.MinInt32 {
		return 0, fmt.Errorf("%w: %d", errBadIndex, i)
	}

	return int(i), nil
}

func stringField(msg *structpb.Struct, name string) (string, error) {
	value, ok := msg.GetFields()[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", errMissingField, name)
	}

	text, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", errFieldType, name)
	}

	return text.StringValue, nil
}
