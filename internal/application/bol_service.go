package application

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jblick1327/shipping/internal/domain"
	"github.com/jblick1327/shipping/pkg/errors"
	"github.com/jblick1327/shipping/pkg/logging"
	"github.com/jblick1327/shipping/pkg/metrics"
)

const defaultHistoryLimit = 20

// BOLService drives the generation pipeline: validate the shipment
// inputs, fetch the order header, derive the document content, render
// the artifacts and write the shipping data back per order. One run
// executes at a time.
type BOLService struct {
	orders    domain.OrderRepository
	renderer  domain.DocumentRenderer
	history   domain.RunHistoryRepository
	publisher domain.EventPublisher
	metrics   *metrics.Metrics
	logger    *logging.Logger
	clock     func() time.Time

	mu sync.Mutex
}

// NewBOLService creates a new BOLService
func NewBOLService(
	orders domain.OrderRepository,
	renderer domain.DocumentRenderer,
	history domain.RunHistoryRepository,
	publisher domain.EventPublisher,
	m *metrics.Metrics,
	logger *logging.Logger,
) *BOLService {
	return &BOLService{
		orders:    orders,
		renderer:  renderer,
		history:   history,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		clock:     time.Now,
	}
}

// Generate runs the full pipeline for one shipment and returns the run
// report. Failed runs still land in the history with the stage they
// died in.
func (s *BOLService) Generate(ctx context.Context, cmd GenerateBOLCommand) (*RunReportDTO, error) {
	if !s.mu.TryLock() {
		return nil, errors.ErrConflict("a generation run is already in progress")
	}
	defer s.mu.Unlock()

	carrier, err := domain.NewCarrier(cmd.CarrierOption, cmd.CustomCarrierName)
	if err != nil {
		return nil, errors.ErrCarrierValidation(err.Error())
	}

	run := domain.NewGenerationRun(uuid.New().String(), carrier, nil, s.clock())
	logger := s.logger.WithRun(run.ID)
	ctx = logging.ContextWithRunID(ctx, run.ID)

	logger.Info("Generation run started", "carrier", carrier.Name(), "orderCount", len(cmd.OrderNumbers))

	report, err := s.execute(ctx, logger, run, cmd, carrier)
	if err != nil {
		s.finishFailed(ctx, logger, run, err)
		return nil, err
	}
	return report, nil
}

func (s *BOLService) execute(ctx context.Context, logger *logging.Logger, run *domain.GenerationRun, cmd GenerateBOLCommand, carrier domain.Carrier) (*RunReportDTO, error) {
	if err := run.BeginValidation(); err != nil {
		return nil, errors.ErrInternal(err.Error())
	}

	session, err := buildSession(carrier, cmd)
	if err != nil {
		return nil, err
	}
	if err := session.Validate(); err != nil {
		return nil, toValidationError(err)
	}
	run.OrderNumbers = session.OrderNumbers()

	if err := run.BeginFetch(); err != nil {
		return nil, errors.ErrInternal(err.Error())
	}

	lead, err := session.LeadOrderNumber()
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}
	record, err := s.orders.FetchOrder(ctx, lead)
	if err != nil {
		if stderrors.Is(err, domain.ErrOrderNotFound) {
			return nil, errors.ErrOrderNotFound(lead.Value())
		}
		logger.WithError(err).Error("Failed to fetch order record", "orderNumber", lead.Value())
		return nil, errors.ErrInternal("failed to fetch order record").Wrap(err)
	}
	run.SetShipment(record.ShipmentID)

	if err := run.BeginBuild(); err != nil {
		return nil, errors.ErrInternal(err.Error())
	}

	shipDate := s.shipDate(cmd)
	addInfo7, addInfo8 := session.DeliveryFields()
	fields := domain.BuildFieldMap(domain.BuildInput{
		Record:         *record,
		Carrier:        carrier,
		OrderNumbers:   session.OrderNumbers(),
		Dimensions:     session.Dimensions(),
		DeclaredSkids:  session.DeclaredSkidCount(),
		Cartons:        session.Cartons(),
		TrackingNumber: session.TrackingNumber(),
		QuoteNumber:    session.QuoteNumber(),
		QuotePrice:     session.QuotePrice(),
		Weight:         session.Weight(),
		AddInfo7:       addInfo7,
		AddInfo8:       addInfo8,
		Date:           shipDate,
	})
	labels := domain.BuildLabelSequence(domain.LabelInput{
		Record:         *record,
		Carrier:        carrier,
		TrackingNumber: session.TrackingNumber(),
		Dimensions:     session.Dimensions(),
		DeclaredSkids:  session.DeclaredSkidCount(),
		Cartons:        session.Cartons(),
	})

	counts := session.Counts()
	if pkgQty := session.Cartons() - counts.Carpets - counts.Boxes; pkgQty < 0 {
		logger.Warn("Package quantity is negative, check the carton count",
			"cartons", session.Cartons(), "packageQty", pkgQty)
	}
	if dropped := len(session.OrderNumbers()) - domain.MaxOrderNumbers; dropped > 0 {
		logger.Warn("Order numbers beyond the document capacity were dropped",
			"capacity", domain.MaxOrderNumbers, "dropped", dropped)
	}

	if err := run.BeginRender(); err != nil {
		return nil, errors.ErrInternal(err.Error())
	}

	bolPath, err := s.renderer.FillTemplate(ctx, fields, carrier.Name(), record.ShipmentID, shipDate)
	if err != nil {
		logger.WithError(err).Error("Failed to render bill of lading", "shipmentId", record.ShipmentID)
		return nil, errors.ErrRenderFailed("bill of lading render failed").Wrap(err)
	}
	s.metrics.RecordDocumentRendered("bol")
	logger.Artifact(ctx, "bol", bolPath)

	labelPath, err := s.renderer.RenderLabels(ctx, labels, carrier.Name(), record.ShipmentID, shipDate)
	if err != nil {
		logger.WithError(err).Error("Failed to render labels", "shipmentId", record.ShipmentID)
		return nil, errors.ErrRenderFailed("label render failed").Wrap(err)
	}
	s.metrics.RecordDocumentRendered("labels")
	s.metrics.RecordLabelPages(carrier.Name(), len(labels))
	logger.Artifact(ctx, "labels", labelPath)

	run.RecordArtifacts(bolPath, labelPath, len(labels))

	if err := run.BeginPersist(); err != nil {
		return nil, errors.ErrInternal(err.Error())
	}

	for _, number := range session.OrderNumbers() {
		update := domain.ShipmentUpdate{
			OrderNumber:    number,
			TrackingNumber: session.TrackingNumber(),
			CarrierName:    carrier.Name(),
			Weight:         session.Weight(),
			Cartons:        session.Cartons(),
			QuotePrice:     session.QuotePrice(),
			ShipDate:       shipDate,
		}

		updateErr := s.orders.UpdateShipment(ctx, update)
		run.RecordUpdateOutcome(number, updateErr)
		s.metrics.RecordShipmentUpdate(updateErr == nil)
		if updateErr != nil {
			logger.WithError(updateErr).Warn("Shipment update failed", "orderNumber", number.Value())
		}
	}

	if err := run.Complete(s.clock()); err != nil {
		return nil, errors.ErrInternal(err.Error())
	}

	s.metrics.RecordGenerationRun(carrier.Name(), "success", run.Duration())
	s.appendHistory(ctx, logger, run)
	s.publishEvents(ctx, logger, run)

	logger.Info("Generation run completed",
		"shipmentId", run.ShipmentID,
		"labelPages", run.LabelPages,
		"failedOrders", len(run.FailedOrders()),
		"durationMs", run.Duration().Milliseconds())

	return ToRunReportDTO(run), nil
}

// Preview derives the document content for a shipment without rendering
// artifacts or touching the order tables
func (s *BOLService) Preview(ctx context.Context, cmd GenerateBOLCommand) (*PreviewDTO, error) {
	carrier, err := domain.NewCarrier(cmd.CarrierOption, cmd.CustomCarrierName)
	if err != nil {
		return nil, errors.ErrCarrierValidation(err.Error())
	}

	session, err := buildSession(carrier, cmd)
	if err != nil {
		return nil, err
	}
	if err := session.Validate(); err != nil {
		return nil, toValidationError(err)
	}

	lead, err := session.LeadOrderNumber()
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}
	record, err := s.orders.FetchOrder(ctx, lead)
	if err != nil {
		if stderrors.Is(err, domain.ErrOrderNotFound) {
			return nil, errors.ErrOrderNotFound(lead.Value())
		}
		s.logger.WithError(err).Error("Failed to fetch order record", "orderNumber", lead.Value())
		return nil, errors.ErrInternal("failed to fetch order record").Wrap(err)
	}

	shipDate := s.shipDate(cmd)
	addInfo7, addInfo8 := session.DeliveryFields()
	fields := domain.BuildFieldMap(domain.BuildInput{
		Record:         *record,
		Carrier:        carrier,
		OrderNumbers:   session.OrderNumbers(),
		Dimensions:     session.Dimensions(),
		DeclaredSkids:  session.DeclaredSkidCount(),
		Cartons:        session.Cartons(),
		TrackingNumber: session.TrackingNumber(),
		QuoteNumber:    session.QuoteNumber(),
		QuotePrice:     session.QuotePrice(),
		Weight:         session.Weight(),
		AddInfo7:       addInfo7,
		AddInfo8:       addInfo8,
		Date:           shipDate,
	})
	labels := domain.BuildLabelSequence(domain.LabelInput{
		Record:         *record,
		Carrier:        carrier,
		TrackingNumber: session.TrackingNumber(),
		Dimensions:     session.Dimensions(),
		DeclaredSkids:  session.DeclaredSkidCount(),
		Cartons:        session.Cartons(),
	})

	return ToPreviewDTO(carrier.Name(), record.ShipmentID, fields, labels), nil
}

// GetOrder looks up the shipment header for one order number
func (s *BOLService) GetOrder(ctx context.Context, query GetOrderQuery) (*OrderRecordDTO, error) {
	number, err := domain.NewOrderNumber(query.OrderNumber)
	if err != nil {
		return nil, errors.ErrInputFormat("Order Number", err.Error())
	}

	record, err := s.orders.FetchOrder(ctx, number)
	if err != nil {
		if stderrors.Is(err, domain.ErrOrderNotFound) {
			return nil, errors.ErrOrderNotFound(number.Value())
		}
		s.logger.WithError(err).Error("Failed to fetch order record", "orderNumber", number.Value())
		return nil, errors.ErrInternal("failed to fetch order record").Wrap(err)
	}

	return ToOrderRecordDTO(record), nil
}

// RecentRuns returns the latest generation runs, newest first
func (s *BOLService) RecentRuns(ctx context.Context, query RecentRunsQuery) ([]RunSummaryDTO, error) {
	if s.history == nil {
		return nil, errors.ErrServiceUnavailable("run history")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	summaries, err := s.history.Recent(ctx, limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load run history")
		return nil, errors.ErrInternal("failed to load run history").Wrap(err)
	}

	return ToRunSummaryDTOs(summaries), nil
}

func (s *BOLService) shipDate(cmd GenerateBOLCommand) time.Time {
	if cmd.ShipDate != nil {
		return *cmd.ShipDate
	}
	return s.clock()
}

func (s *BOLService) finishFailed(ctx context.Context, logger *logging.Logger, run *domain.GenerationRun, cause error) {
	stage := string(run.Status)
	if err := run.Fail(cause, s.clock()); err != nil {
		return
	}

	appErr := errors.FromError(cause)
	s.metrics.RecordGenerationRun(run.Carrier.Name(), "error", run.Duration())
	s.metrics.RecordRunStageFailure(string(run.FailureStage), appErr.Code)
	logger.RunTransition(ctx, run.ID, stage, string(domain.RunStatusFailed))
	logger.WithError(cause).Error("Generation run failed",
		"stage", string(run.FailureStage),
		"code", appErr.Code)

	s.appendHistory(ctx, logger, run)
	s.publishEvents(ctx, logger, run)
}

func (s *BOLService) appendHistory(ctx context.Context, logger *logging.Logger, run *domain.GenerationRun) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(ctx, run.Summary()); err != nil {
		logger.WithError(err).Warn("Failed to append run history", "runId", run.ID)
	}
}

func (s *BOLService) publishEvents(ctx context.Context, logger *logging.Logger, run *domain.GenerationRun) {
	if s.publisher == nil {
		return
	}

	key := run.ShipmentID
	if key == "" {
		key = run.ID
	}

	for _, event := range run.GetDomainEvents() {
		if err := s.publisher.Publish(ctx, key, event); err != nil {
			logger.WithError(err).Warn("Failed to publish event", "eventType", event.EventType())
		}
	}
	run.ClearDomainEvents()
}

// buildSession assembles and gates the shipment inputs under the
// selected carrier's entry policy
func buildSession(carrier domain.Carrier, cmd GenerateBOLCommand) (*domain.ShipmentSession, error) {
	session := domain.NewShipmentSession()
	session.SetCarrier(carrier)

	for _, raw := range cmd.OrderNumbers {
		if err := session.AddOrderNumber(raw); err != nil {
			return nil, errors.ErrInputFormat("Order Number", err.Error()).WithDetail("value", raw)
		}
	}

	for _, entry := range cmd.Dimensions {
		kind, err := dimensionKind(entry.Kind)
		if err != nil {
			return nil, errors.ErrInputFormat("Skid Dimensions", err.Error()).WithDetail("value", entry.Kind)
		}
		if err := session.AddDimension(entry.Value, kind); err != nil {
			if stderrors.Is(err, domain.ErrDimensionsNotAccepted) {
				return nil, errors.ErrCarrierValidation(err.Error())
			}
			return nil, errors.ErrInputFormat("Skid Dimensions", err.Error()).WithDetail("value", entry.Value)
		}
	}

	if cmd.DeclaredSkids != nil {
		session.SetDeclaredSkidCount(*cmd.DeclaredSkids)
	}

	session.SetCartons(cmd.Cartons)
	session.SetTrackingNumber(cmd.TrackingNumber)
	session.SetQuoteNumber(cmd.QuoteNumber)
	session.SetQuotePrice(cmd.QuotePrice)
	session.SetWeight(cmd.Weight)

	if err := session.SetDeliveryInstructions(cmd.DeliveryInstructions); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	return session, nil
}

func dimensionKind(raw string) (domain.DimensionKind, error) {
	switch raw {
	case "", string(domain.DimensionKindSkid):
		return domain.DimensionKindSkid, nil
	case string(domain.DimensionKindCarpet):
		return domain.DimensionKindCarpet, nil
	case string(domain.DimensionKindBox):
		return domain.DimensionKindBox, nil
	default:
		return "", stderrors.New("unit kind must be skid, carpet or box")
	}
}

func toValidationError(err error) *errors.AppError {
	var violation *domain.FieldViolation
	if stderrors.As(err, &violation) {
		return errors.ErrCarrierValidation(violation.Error()).WithDetail("field", violation.Field)
	}

	var mismatch *domain.CountMismatchError
	if stderrors.As(err, &mismatch) {
		return errors.ErrValidation(mismatch.Error())
	}

	if stderrors.Is(err, domain.ErrDimensionsNotAccepted) {
		return errors.ErrCarrierValidation(err.Error())
	}

	return errors.ErrValidation(err.Error())
}
