package orchestrator

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/service"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/logger"
)

// CheckStatefulsetStorage compares the requested disk size with the volume bound to the database statefulset.
// It returns nil when the statefulset does not exist yet or the sizes are equal, the PVC to grow when the
// request is larger, and an invalid payload error when it is smaller. It never mutates the cluster.
func CheckStatefulsetStorage(ctx context.Context, target *service.DeploymentTarget, db ContainerDatabase) (*models.InvalidStatefulsetStorage, error) {
	details := target.EventDetails(appErr.StageDeploy, db)
	ns := target.Namespace()
	client := target.Cluster.Client

	sts, err := client.GetStatefulSetVolumes(ctx, ns, db.StatefulsetSelector())
	if err != nil {
		return nil, appErr.NewK8sCannotGetStatefulset(details, ns, db.StatefulsetSelector(), err)
	}
	if sts == nil {
		return nil, nil
	}
	if len(sts.VolumeClaims) != 1 {
		return nil, appErr.NewServiceMissingStorage(details, db.ID())
	}

	current, err := resource.ParseQuantity(sts.VolumeClaims[0].StorageRequest)
	if err != nil {
		return nil, appErr.NewCannotParseString(details, sts.VolumeClaims[0].StorageRequest, err)
	}
	requested := resource.MustParse(fmt.Sprintf("%dGi", db.StorageSizeInGiB()))

	switch requested.Cmp(current) {
	case 0:
		return nil, nil
	case -1:
		return nil, appErr.NewInvalidEnginePayload(details,
			fmt.Sprintf("new storage size (%s) should be equal or greater than actual size (%s)", requested.String(), current.String()))
	}

	pvcs, err := client.GetPVCs(ctx, ns, db.PVCSelector())
	if err != nil {
		return nil, appErr.NewK8sCannotGetPVCs(details, ns, err)
	}
	if len(pvcs) == 0 {
		return nil, appErr.NewServiceMissingStorage(details, db.ID())
	}
	return &models.InvalidStatefulsetStorage{
		ServiceType:         db.ServiceType(),
		ServiceID:           db.ID(),
		StatefulsetSelector: db.StatefulsetSelector(),
		StatefulsetName:     sts.Name,
		InvalidPVCs: []models.InvalidPVCStorage{{
			PVCName:               pvcs[0].Name,
			RequiredDiskSizeInGiB: db.StorageSizeInGiB(),
		}},
	}, nil
}

// applyStorageResize orphan deletes the statefulset so its pods keep running, then grows the claims.
// The following helm upgrade recreates the statefulset with the new size.
func applyStorageResize(ctx context.Context, target *service.DeploymentTarget, details appErr.EventDetails, invalid *models.InvalidStatefulsetStorage) error {
	ns := target.Namespace()
	client := target.Cluster.Client

	if err := client.OrphanDeleteStatefulSet(ctx, ns, invalid.StatefulsetName); err != nil {
		return appErr.NewK8sCannotOrphanDelete(details, invalid.StatefulsetName, ns, err)
	}
	for _, pvc := range invalid.InvalidPVCs {
		if err := client.ResizePVC(ctx, ns, pvc.PVCName, pvc.RequiredDiskSizeInGiB); err != nil {
			return appErr.NewK8sCannotPVCEdit(details, pvc.PVCName, ns, err)
		}
		logger.L().Info("persistent volume claim resized",
			zap.String("pvc", pvc.PVCName),
			zap.Int("size_gib", pvc.RequiredDiskSizeInGiB),
			zap.String("service_id", invalid.ServiceID))
	}
	return nil
}
