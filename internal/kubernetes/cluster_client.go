package kubernetes

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"

	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/pkg/logger"
)

var _ port.ClusterClient = (*ClusterClient)(nil)

type ClusterClient struct {
	client kubernetes.Interface
}

func NewClusterClient(client kubernetes.Interface) *ClusterClient {
	return &ClusterClient{client: client}
}

func (c *ClusterClient) CreateNamespace(ctx context.Context, name string, labels map[string]string) error {
	ns := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels}}
	_, err := c.client.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create namespace %s: %w", name, err)
	}
	logger.L().Info("namespace created", zap.String("namespace", name))
	return nil
}

func (c *ClusterClient) GetPods(ctx context.Context, namespace, selector string) ([]models.Pod, error) {
	list, err := c.client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}
	return lo.Map(list.Items, func(p corev1.Pod, _ int) models.Pod { return toPod(p) }), nil
}

func toPod(p corev1.Pod) models.Pod {
	pod := models.Pod{
		Name:      p.Name,
		Namespace: p.Namespace,
		Phase:     models.PodPhase(p.Status.Phase),
		CreatedAt: p.CreationTimestamp.Time,
	}
	for _, cond := range p.Status.Conditions {
		if cond.Type == corev1.PodReady && cond.Status == corev1.ConditionTrue {
			pod.Ready = true
		}
		pod.Conditions = append(pod.Conditions, models.PodCondition{
			Type:    string(cond.Type),
			Status:  string(cond.Status),
			Reason:  cond.Reason,
			Message: cond.Message,
		})
	}
	for _, cs := range p.Status.ContainerStatuses {
		status := models.ContainerStatus{Name: cs.Name, Ready: cs.Ready}
		terminated := cs.State.Terminated
		if terminated == nil {
			terminated = cs.LastTerminationState.Terminated
		}
		if terminated != nil {
			status.LastTerminated = &models.ContainerTerminated{
				ExitCode: terminated.ExitCode,
				Reason:   terminated.Reason,
				Message:  terminated.Message,
			}
		}
		if w := cs.State.Waiting; w != nil {
			status.LastWaiting = &models.ContainerWaiting{Reason: w.Reason, Message: w.Message}
		}
		pod.ContainerStatuses = append(pod.ContainerStatuses, status)
	}
	return pod
}

func (c *ClusterClient) DeletePod(ctx context.Context, namespace, name string) error {
	err := c.client.CoreV1().Pods(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("delete pod %s: %w", name, err)
	}
	return nil
}

func (c *ClusterClient) DeleteSecret(ctx context.Context, namespace, name string) error {
	err := c.client.CoreV1().Secrets(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if apierrors.IsNotFound(err) {
		logger.L().Debug("secret already absent", zap.String("namespace", namespace), zap.String("secret", name))
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete secret %s: %w", name, err)
	}
	return nil
}

// ScaleReplicas sets spec.replicas on every controller of kind matching selector.
func (c *ClusterClient) ScaleReplicas(ctx context.Context, namespace string, kind models.ScalingKind, selector string, replicas int32) error {
	opts := metav1.ListOptions{LabelSelector: selector}
	switch kind {
	case models.ScalingDeployment:
		api := c.client.AppsV1().Deployments(namespace)
		list, err := api.List(ctx, opts)
		if err != nil {
			return fmt.Errorf("list deployments: %w", err)
		}
		for i := range list.Items {
			d := &list.Items[i]
			d.Spec.Replicas = &replicas
			if _, err := api.Update(ctx, d, metav1.UpdateOptions{}); err != nil {
				return fmt.Errorf("scale deployment %s: %w", d.Name, err)
			}
		}
	case models.ScalingStatefulSet:
		api := c.client.AppsV1().StatefulSets(namespace)
		list, err := api.List(ctx, opts)
		if err != nil {
			return fmt.Errorf("list statefulsets: %w", err)
		}
		for i := range list.Items {
			s := &list.Items[i]
			s.Spec.Replicas = &replicas
			if _, err := api.Update(ctx, s, metav1.UpdateOptions{}); err != nil {
				return fmt.Errorf("scale statefulset %s: %w", s.Name, err)
			}
		}
	default:
		return fmt.Errorf("unknown scaling kind %q", kind)
	}

	logger.L().Info("replicas scaled",
		zap.String("namespace", namespace),
		zap.String("kind", string(kind)),
		zap.String("selector", selector),
		zap.Int32("replicas", replicas),
	)
	return nil
}

// GetLogs returns the last tailLines of every container of the pods matching selector.
func (c *ClusterClient) GetLogs(ctx context.Context, namespace, selector string, tailLines int64) ([]string, error) {
	pods, err := c.client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("list pods: %w", err)
	}

	var lines []string
	for _, pod := range pods.Items {
		for _, container := range pod.Spec.Containers {
			raw, err := c.client.CoreV1().Pods(namespace).GetLogs(pod.Name, &corev1.PodLogOptions{
				Container: container.Name,
				TailLines: &tailLines,
			}).DoRaw(ctx)
			if err != nil {
				return lines, fmt.Errorf("logs of %s/%s: %w", pod.Name, container.Name, err)
			}
			scanner := bufio.NewScanner(bytes.NewReader(raw))
			for scanner.Scan() {
				lines = append(lines, fmt.Sprintf("%s/%s: %s", pod.Name, container.Name, scanner.Text()))
			}
		}
	}
	return lines, nil
}

func (c *ClusterClient) GetEvents(ctx context.Context, namespace string) ([]models.KubeEvent, error) {
	list, err := c.client.CoreV1().Events(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return lo.Map(list.Items, func(e corev1.Event, _ int) models.KubeEvent {
		ts := e.LastTimestamp.Time
		if ts.IsZero() {
			ts = e.EventTime.Time
		}
		if ts.IsZero() {
			ts = e.CreationTimestamp.Time
		}
		return models.KubeEvent{
			Type:          e.Type,
			Reason:        e.Reason,
			Message:       e.Message,
			Object:        e.InvolvedObject.Kind + "/" + e.InvolvedObject.Name,
			LastTimestamp: ts,
		}
	}), nil
}

// GetStatefulSetVolumes returns nil, nil when no statefulset matches selector.
func (c *ClusterClient) GetStatefulSetVolumes(ctx context.Context, namespace, selector string) (*models.StatefulSetVolumes, error) {
	list, err := c.client.AppsV1().StatefulSets(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("list statefulsets: %w", err)
	}
	if len(list.Items) == 0 {
		return nil, nil
	}
	sts := list.Items[0]
	return &models.StatefulSetVolumes{
		Name: sts.Name,
		VolumeClaims: lo.Map(sts.Spec.VolumeClaimTemplates, func(pvc corev1.PersistentVolumeClaim, _ int) models.VolumeClaim {
			return toVolumeClaim(pvc)
		}),
	}, nil
}

func (c *ClusterClient) GetPVCs(ctx context.Context, namespace, selector string) ([]models.VolumeClaim, error) {
	list, err := c.client.CoreV1().PersistentVolumeClaims(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("list pvcs: %w", err)
	}
	return lo.Map(list.Items, func(pvc corev1.PersistentVolumeClaim, _ int) models.VolumeClaim {
		return toVolumeClaim(pvc)
	}), nil
}

func toVolumeClaim(pvc corev1.PersistentVolumeClaim) models.VolumeClaim {
	claim := models.VolumeClaim{Name: pvc.Name}
	if q, ok := pvc.Spec.Resources.Requests[corev1.ResourceStorage]; ok {
		claim.StorageRequest = q.String()
	}
	return claim
}

// OrphanDeleteStatefulSet deletes the statefulset and leaves its pods and claims in place.
func (c *ClusterClient) OrphanDeleteStatefulSet(ctx context.Context, namespace, name string) error {
	orphan := metav1.DeletePropagationOrphan
	err := c.client.AppsV1().StatefulSets(namespace).Delete(ctx, name, metav1.DeleteOptions{PropagationPolicy: &orphan})
	if err != nil && !apierrors.IsNotFound(err) {
		return fmt.Errorf("orphan delete statefulset %s: %w", name, err)
	}
	return nil
}

func (c *ClusterClient) ResizePVC(ctx context.Context, namespace, name string, sizeInGiB int) error {
	size := resource.MustParse(fmt.Sprintf("%dGi", sizeInGiB))
	patch, err := json.Marshal(map[string]any{
		"spec": map[string]any{
			"resources": map[string]any{
				"requests": map[string]string{"storage": size.String()},
			},
		},
	})
	if err != nil {
		return err
	}
	if _, err := c.client.CoreV1().PersistentVolumeClaims(namespace).Patch(ctx, name, types.MergePatchType, patch, metav1.PatchOptions{}); err != nil {
		return fmt.Errorf("resize pvc %s: %w", name, err)
	}
	logger.L().Info("pvc resized",
		zap.String("namespace", namespace),
		zap.String("pvc", name),
		zap.String("size", size.String()),
	)
	return nil
}
