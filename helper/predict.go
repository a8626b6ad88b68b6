package helper

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"WORKSITE/models"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/linear_models"
)

func timeToMinutes(timeStr string) float64 {
	parts := strings.Split(timeStr, ":")
	if len(parts) < 2 {
		return 0
	}
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return float64(hours*60 + minutes)
}

func minutesToTime(minutes float64) string {
	hours := int(minutes/60) % 24
	mins := int(minutes) % 60
	return fmt.Sprintf("%02d:%02d", hours, mins)
}

// PredictCheckoutTime fits a linear regression over a worker's recent
// (check-in, check-out) pairs and estimates today's checkout from the new
// check-in time. History entries are [in, out] as "HH:MM" strings.
func PredictCheckoutTime(history [][2]string, newCheckInTime string) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("no training data available")
	}

	var csvBuffer bytes.Buffer
	csvBuffer.WriteString("check_out,check_in\n")
	for _, record := range history {
		checkInMinutes := timeToMinutes(record[0])
		checkOutMinutes := timeToMinutes(record[1])
		csvBuffer.WriteString(fmt.Sprintf("%.2f,%.2f\n", checkOutMinutes, checkInMinutes))
	}

	instances, err := base.ParseCSVToInstancesFromReader(bytes.NewReader(csvBuffer.Bytes()), true)
	if err != nil {
		return "", fmt.Errorf("failed to parse training data: %w", err)
	}

	model := linear_models.NewLinearRegression()
	if err := model.Fit(instances); err != nil {
		return "", fmt.Errorf("failed to train model: %w", err)
	}

	newCheckInMinutes := timeToMinutes(newCheckInTime)
	predCSV := fmt.Sprintf("check_out,check_in\n0.0,%.2f\n", newCheckInMinutes)

	predInstances, err := base.ParseCSVToInstancesFromReader(strings.NewReader(predCSV), true)
	if err != nil {
		return "", fmt.Errorf("failed to parse prediction data: %w", err)
	}

	predictions, err := model.Predict(predInstances)
	if err != nil {
		return "", fmt.Errorf("prediction failed: %w", err)
	}

	classAttrs := predictions.AllClassAttributes()
	if len(classAttrs) == 0 {
		return "", fmt.Errorf("no class attribute in predictions")
	}

	classSpec := base.ResolveAttributes(predictions, classAttrs)[0]
	predictedBytes := predictions.Get(classSpec, 0)
	predictedMinutes := base.UnpackBytesToFloat(predictedBytes)

	return minutesToTime(predictedMinutes), nil
}

// TrainingHistory converts a worker's closed records into predictor input.
func TrainingHistory(records []models.AttendanceRecord) [][2]string {
	var history [][2]string
	for _, rec := range records {
		if rec.CheckOutAt == nil {
			continue
		}
		history = append(history, [2]string{
			rec.CheckInAt.Format("15:04"),
			rec.CheckOutAt.Format("15:04"),
		})
	}
	return history
}
