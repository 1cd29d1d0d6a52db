package mongodb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/sitestock/internal/domain/models"
)

const dateLayout = "2006-01-02"

// Documents are written by the admin backend with loosely typed fields, so every
// value goes through the coercions below instead of strict struct decoding.

func decodeEquipment(doc bson.M) models.Equipment {
	return models.Equipment{
		ID:              toID(doc["_id"]),
		Name:            toString(doc["nom"]),
		Type:            toString(doc["type"]),
		Stock:           toInt(doc["stock"]),
		Threshold:       toInt(doc["seuil"]),
		DailyCost:       toFloat(doc["coutParJour"]),
		DaysUsed:        toInt(doc["joursUtilisation"]),
		NextRestockDate: toDate(doc["dateProchainAppro"]),
		ProjectRef:      toID(doc["projet"]),
		SupplierRef:     toID(doc["fournisseur"]),
	}
}

func decodeMaterial(doc bson.M) models.Material {
	return models.Material{
		ID:              toID(doc["_id"]),
		Name:            toString(doc["nom"]),
		Type:            toString(doc["type"]),
		Stock:           toInt(doc["stock"]),
		Threshold:       toInt(doc["seuil"]),
		UnitCost:        toFloat(doc["coutUnitaire"]),
		NextRestockDate: toDate(doc["dateProchainAppro"]),
		OrderSent:       toBool(doc["commandeEnvoyee"]),
		ProjectRef:      toID(doc["projet"]),
		SupplierRef:     toID(doc["fournisseur"]),
	}
}

func toID(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case bson.M:
		// populated references keep their own _id
		return toID(v["_id"])
	default:
		return fmt.Sprint(v)
	}
}

func toString(value any) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(value)
}

func toFloat(value any) float64 {
	var f float64
	switch v := value.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case primitive.Decimal128:
		parsed, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", "."), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toInt(value any) int {
	switch v := value.(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		f := toFloat(value)
		if f > math.MaxInt32 || f < math.MinInt32 {
			return 0
		}
		return int(f)
	}
}

func toBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return toFloat(value) != 0
	}
}

func toDate(value any) *time.Time {
	var t time.Time
	switch v := value.(type) {
	case primitive.DateTime:
		t = v.Time().UTC()
	case time.Time:
		t = v.UTC()
	case string:
		str := strings.TrimSpace(v)
		if parsed, err := time.Parse(time.RFC3339, str); err == nil {
			t = parsed
		} else {
			if len(str) > 10 {
				str = str[:10]
			}
			parsed, err := time.Parse(dateLayout, str)
			if err != nil {
				return nil
			}
			t = parsed
		}
	default:
		return nil
	}
	if t.IsZero() {
		return nil
	}
	return &t
}
