package application

import "github.com/jblick1327/shipping/internal/domain"

// ToRunReportDTO converts a finished GenerationRun to RunReportDTO
func ToRunReportDTO(run *domain.GenerationRun) *RunReportDTO {
	if run == nil {
		return nil
	}

	summary := run.Summary()
	return &RunReportDTO{
		RunID:         summary.ID,
		Status:        string(summary.Status),
		CarrierName:   summary.CarrierName,
		ShipmentID:    summary.ShipmentID,
		OrderNumbers:  summary.OrderNumbers,
		BOLPath:       summary.BOLPath,
		LabelPath:     summary.LabelPath,
		LabelPages:    summary.LabelPages,
		FailedOrders:  summary.FailedOrders,
		FailureStage:  summary.FailureStage,
		FailureReason: summary.FailureReason,
		StartedAt:     summary.StartedAt,
		CompletedAt:   summary.CompletedAt,
	}
}

// ToRunSummaryDTO converts a persisted RunSummary to RunSummaryDTO
func ToRunSummaryDTO(summary domain.RunSummary) RunSummaryDTO {
	return RunSummaryDTO{
		RunID:         summary.ID,
		Status:        string(summary.Status),
		CarrierName:   summary.CarrierName,
		ShipmentID:    summary.ShipmentID,
		OrderNumbers:  summary.OrderNumbers,
		BOLPath:       summary.BOLPath,
		LabelPath:     summary.LabelPath,
		LabelPages:    summary.LabelPages,
		FailedOrders:  summary.FailedOrders,
		FailureStage:  summary.FailureStage,
		FailureReason: summary.FailureReason,
		StartedAt:     summary.StartedAt,
		CompletedAt:   summary.CompletedAt,
	}
}

// ToRunSummaryDTOs converts a slice of RunSummary to DTOs
func ToRunSummaryDTOs(summaries []domain.RunSummary) []RunSummaryDTO {
	dtos := make([]RunSummaryDTO, len(summaries))
	for i, summary := range summaries {
		dtos[i] = ToRunSummaryDTO(summary)
	}
	return dtos
}

// ToPreviewDTO converts the derived field map and label sequence to
// PreviewDTO
func ToPreviewDTO(carrierName, shipmentID string, fields domain.FieldMap, labels []domain.LabelDescriptor) *PreviewDTO {
	pages := make([]LabelPageDTO, len(labels))
	for i, label := range labels {
		pages[i] = LabelPageDTO{
			UnitIndex:    label.UnitIndex,
			TotalUnits:   label.TotalUnits,
			PrimaryText:  label.PrimaryText,
			SuffixText:   label.SuffixText,
			ShowTracking: label.ShowTrackingLine(),
		}
	}

	return &PreviewDTO{
		CarrierName: carrierName,
		ShipmentID:  shipmentID,
		Fields:      fields,
		Labels:      pages,
	}
}

// ToOrderRecordDTO converts a fetched OrderRecord to OrderRecordDTO
func ToOrderRecordDTO(record *domain.OrderRecord) *OrderRecordDTO {
	if record == nil {
		return nil
	}

	attention, wasPresent := domain.NormalizeAttentionLine(record.ShipToContact)
	return &OrderRecordDTO{
		ShipmentID:          record.ShipmentID,
		ShipToName:          record.ShipToName,
		ShipToAddress:       record.ShipToAddress,
		AttentionLine:       attention,
		AttentionWasPresent: wasPresent,
		CityProvince:        domain.FormatCityProvince(record.ShipToCity),
		PostalCode:          record.ShipToPostal,
	}
}
