package tool

import (
	toolerrors "github.com/vendas-sistemas/perroni-sub000/internal/tool/errors"

	"github.com/google/uuid"
)

// endpoint identifies one side of a move. JobID is set only for JOB locations.
type endpoint struct {
	Type  string
	JobID *uuid.UUID
}

// movePlan is the resolved form of a move request: where units leave, where
// they arrive, and the sign of the tool-total change.
type movePlan struct {
	Source     *endpoint
	Dest       *endpoint
	TotalDelta int
}

// resolveMove validates a move request against the kind table and resolves
// its endpoints.
//
//	kind             source              dest        total delta
//	IN               -                   warehouse   +qty
//	TO_JOB           warehouse           job         0
//	BETWEEN          job                 job (≠)     0
//	TO_WAREHOUSE     job                 warehouse   0
//	TO_MAINTENANCE   warehouse | job     maintenance 0
//	FROM_MAINTENANCE maintenance         warehouse   0
//	LOSS             warehouse | job     lost        0
//	DISCARD          warehouse | job     -           -qty
func resolveMove(req MoveRequest) (movePlan, error) {
	sourceJob, err := parseOptionalJob(req.SourceJobID)
	if err != nil {
		return movePlan{}, err
	}
	destJob, err := parseOptionalJob(req.DestJobID)
	if err != nil {
		return movePlan{}, err
	}

	switch req.Kind {
	case MoveIn:
		return movePlan{
			Dest:       &endpoint{Type: LocationWarehouse},
			TotalDelta: 1,
		}, nil

	case MoveToJob:
		if destJob == nil {
			return movePlan{}, toolerrors.ErrMissingEndpoint
		}
		return movePlan{
			Source: &endpoint{Type: LocationWarehouse},
			Dest:   &endpoint{Type: LocationJob, JobID: destJob},
		}, nil

	case MoveBetween:
		if sourceJob == nil || destJob == nil {
			return movePlan{}, toolerrors.ErrMissingEndpoint
		}
		if *sourceJob == *destJob {
			return movePlan{}, toolerrors.ErrSameEndpoint
		}
		return movePlan{
			Source: &endpoint{Type: LocationJob, JobID: sourceJob},
			Dest:   &endpoint{Type: LocationJob, JobID: destJob},
		}, nil

	case MoveToWarehouse:
		if sourceJob == nil {
			return movePlan{}, toolerrors.ErrMissingEndpoint
		}
		return movePlan{
			Source: &endpoint{Type: LocationJob, JobID: sourceJob},
			Dest:   &endpoint{Type: LocationWarehouse},
		}, nil

	case MoveToMaintenance:
		source, err := flexibleSource(req.SourceType, sourceJob)
		if err != nil {
			return movePlan{}, err
		}
		return movePlan{
			Source: source,
			Dest:   &endpoint{Type: LocationMaintenance},
		}, nil

	case MoveFromMaintenance:
		return movePlan{
			Source: &endpoint{Type: LocationMaintenance},
			Dest:   &endpoint{Type: LocationWarehouse},
		}, nil

	case MoveLoss:
		source, err := flexibleSource(req.SourceType, sourceJob)
		if err != nil {
			return movePlan{}, err
		}
		return movePlan{
			Source: source,
			Dest:   &endpoint{Type: LocationLost},
		}, nil

	case MoveDiscard:
		source, err := flexibleSource(req.SourceType, sourceJob)
		if err != nil {
			return movePlan{}, err
		}
		return movePlan{
			Source:     source,
			TotalDelta: -1,
		}, nil
	}

	return movePlan{}, toolerrors.ErrInvalidKind
}

// flexibleSource handles kinds that accept either warehouse or a job as the
// source. A job source requires the job id; warehouse is the default when no
// source type is given.
func flexibleSource(sourceType string, sourceJob *uuid.UUID) (*endpoint, error) {
	if sourceType == "" && sourceJob != nil {
		sourceType = LocationJob
	}
	switch sourceType {
	case "", LocationWarehouse:
		if sourceJob != nil {
			return nil, toolerrors.ErrInvalidSourceType
		}
		return &endpoint{Type: LocationWarehouse}, nil
	case LocationJob:
		if sourceJob == nil {
			return nil, toolerrors.ErrMissingEndpoint
		}
		return &endpoint{Type: LocationJob, JobID: sourceJob}, nil
	}
	return nil, toolerrors.ErrInvalidSourceType
}

func parseOptionalJob(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, toolerrors.ErrMissingEndpoint
	}
	return &id, nil
}
