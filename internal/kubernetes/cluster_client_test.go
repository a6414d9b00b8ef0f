package kubernetes

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	fakeclient "k8s.io/client-go/kubernetes/fake"

	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

const ns = "ns1"

var appLabels = map[string]string{"converge.dev/service-id": "0badcafe-0000-4000-8000-000000000001"}

func makePod(name string, phase corev1.PodPhase, ready bool) *corev1.Pod {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ns, Labels: appLabels},
		Spec:       corev1.PodSpec{Containers: []corev1.Container{{Name: "app"}}},
		Status: corev1.PodStatus{
			Phase:      phase,
			Conditions: []corev1.PodCondition{{Type: corev1.PodReady, Status: status}},
			ContainerStatuses: []corev1.ContainerStatus{{
				Name:  "app",
				State: corev1.ContainerState{Waiting: &corev1.ContainerStateWaiting{Reason: "CrashLoopBackOff", Message: "back-off"}},
				LastTerminationState: corev1.ContainerState{
					Terminated: &corev1.ContainerStateTerminated{ExitCode: 137, Reason: "OOMKilled"},
				},
			}},
		},
	}
}

func makeClaim(name, size string) corev1.PersistentVolumeClaim {
	return corev1.PersistentVolumeClaim{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: ns, Labels: map[string]string{"app": "pg"}},
		Spec: corev1.PersistentVolumeClaimSpec{
			Resources: corev1.VolumeResourceRequirements{
				Requests: corev1.ResourceList{corev1.ResourceStorage: resource.MustParse(size)},
			},
		},
	}
}

func TestCreateNamespaceIsIdempotent(t *testing.T) {
	cs := fakeclient.NewSimpleClientset()
	c := NewClusterClient(cs)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.CreateNamespace(context.Background(), ns, map[string]string{"ttl": "3600"})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}

	got, err := cs.CoreV1().Namespaces().Get(context.Background(), ns, metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "3600", got.Labels["ttl"])
}

func TestGetPodsConvertsStatus(t *testing.T) {
	c := NewClusterClient(fakeclient.NewSimpleClientset(
		makePod("web-1", corev1.PodRunning, true),
		makePod("web-2", corev1.PodPending, false),
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "other", Namespace: ns}},
	))

	pods, err := c.GetPods(context.Background(), ns, "converge.dev/service-id=0badcafe-0000-4000-8000-000000000001")
	require.NoError(t, err)
	require.Len(t, pods, 2)

	byName := map[string]models.Pod{pods[0].Name: pods[0], pods[1].Name: pods[1]}
	assert.True(t, byName["web-1"].Ready)
	assert.False(t, byName["web-2"].Ready)
	assert.Equal(t, models.PodPending, byName["web-2"].Phase)

	cs := byName["web-2"].ContainerStatuses[0]
	require.NotNil(t, cs.LastTerminated)
	assert.Equal(t, int32(137), cs.LastTerminated.ExitCode)
	require.NotNil(t, cs.LastWaiting)
	assert.Equal(t, "CrashLoopBackOff", cs.LastWaiting.Reason)
}

func TestDeleteToleratesAbsentObjects(t *testing.T) {
	c := NewClusterClient(fakeclient.NewSimpleClientset())
	assert.NoError(t, c.DeletePod(context.Background(), ns, "absent"))
	assert.NoError(t, c.DeleteSecret(context.Background(), ns, "tfstate-default-z0badcafe"))
	assert.NoError(t, c.OrphanDeleteStatefulSet(context.Background(), ns, "absent"))
}

func TestDeleteSecret(t *testing.T) {
	cs := fakeclient.NewSimpleClientset(&corev1.Secret{ObjectMeta: metav1.ObjectMeta{Name: "tfstate-default-z1", Namespace: ns}})
	require.NoError(t, NewClusterClient(cs).DeleteSecret(context.Background(), ns, "tfstate-default-z1"))

	_, err := cs.CoreV1().Secrets(ns).Get(context.Background(), "tfstate-default-z1", metav1.GetOptions{})
	assert.Error(t, err)
}

func TestScaleReplicas(t *testing.T) {
	three := int32(3)
	tests := []struct {
		name    string
		kind    models.ScalingKind
		objects []runtime.Object
		check   func(t *testing.T, cs *fakeclient.Clientset)
	}{
		{
			name: "deployment",
			kind: models.ScalingDeployment,
			objects: []runtime.Object{&appsv1.Deployment{
				ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: ns, Labels: appLabels},
				Spec:       appsv1.DeploymentSpec{Replicas: &three},
			}},
			check: func(t *testing.T, cs *fakeclient.Clientset) {
				d, err := cs.AppsV1().Deployments(ns).Get(context.Background(), "web", metav1.GetOptions{})
				require.NoError(t, err)
				assert.Equal(t, int32(0), *d.Spec.Replicas)
			},
		},
		{
			name: "statefulset",
			kind: models.ScalingStatefulSet,
			objects: []runtime.Object{&appsv1.StatefulSet{
				ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: ns, Labels: appLabels},
				Spec:       appsv1.StatefulSetSpec{Replicas: &three},
			}},
			check: func(t *testing.T, cs *fakeclient.Clientset) {
				s, err := cs.AppsV1().StatefulSets(ns).Get(context.Background(), "web", metav1.GetOptions{})
				require.NoError(t, err)
				assert.Equal(t, int32(0), *s.Spec.Replicas)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := fakeclient.NewSimpleClientset(tt.objects...)
			err := NewClusterClient(cs).ScaleReplicas(context.Background(), ns, tt.kind, "converge.dev/service-id=0badcafe-0000-4000-8000-000000000001", 0)
			require.NoError(t, err)
			tt.check(t, cs)
		})
	}

	err := NewClusterClient(fakeclient.NewSimpleClientset()).ScaleReplicas(context.Background(), ns, "CronJob", "", 0)
	assert.Error(t, err)
}

func TestGetLogs(t *testing.T) {
	c := NewClusterClient(fakeclient.NewSimpleClientset(makePod("web-1", corev1.PodRunning, true)))
	lines, err := c.GetLogs(context.Background(), ns, "converge.dev/service-id=0badcafe-0000-4000-8000-000000000001", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"web-1/app: fake logs"}, lines)
}

func TestGetEvents(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	c := NewClusterClient(fakeclient.NewSimpleClientset(&corev1.Event{
		ObjectMeta:     metav1.ObjectMeta{Name: "e1", Namespace: ns},
		Type:           corev1.EventTypeWarning,
		Reason:         "FailedScheduling",
		Message:        "0/3 nodes are available",
		InvolvedObject: corev1.ObjectReference{Kind: "Pod", Name: "web-1"},
		LastTimestamp:  metav1.NewTime(at),
	}))

	evts, err := c.GetEvents(context.Background(), ns)
	require.NoError(t, err)
	require.Len(t, evts, 1)
	assert.Equal(t, "Pod/web-1", evts[0].Object)
	assert.Equal(t, at, evts[0].LastTimestamp.UTC())
}

func TestStatefulSetVolumes(t *testing.T) {
	selector := "databaseId=z0badcafe"
	c := NewClusterClient(fakeclient.NewSimpleClientset())
	vols, err := c.GetStatefulSetVolumes(context.Background(), ns, selector)
	require.NoError(t, err)
	assert.Nil(t, vols)

	c = NewClusterClient(fakeclient.NewSimpleClientset(&appsv1.StatefulSet{
		ObjectMeta: metav1.ObjectMeta{Name: "postgresql-z0badcafe", Namespace: ns, Labels: map[string]string{"databaseId": "z0badcafe"}},
		Spec: appsv1.StatefulSetSpec{
			VolumeClaimTemplates: []corev1.PersistentVolumeClaim{makeClaim("data", "10Gi")},
		},
	}))
	vols, err = c.GetStatefulSetVolumes(context.Background(), ns, selector)
	require.NoError(t, err)
	require.NotNil(t, vols)
	assert.Equal(t, "postgresql-z0badcafe", vols.Name)
	assert.Equal(t, []models.VolumeClaim{{Name: "data", StorageRequest: "10Gi"}}, vols.VolumeClaims)
}

func TestResizePVC(t *testing.T) {
	claim := makeClaim("data-postgresql-0", "10Gi")
	cs := fakeclient.NewSimpleClientset(&claim)
	c := NewClusterClient(cs)

	require.NoError(t, c.ResizePVC(context.Background(), ns, "data-postgresql-0", 20))

	pvcs, err := c.GetPVCs(context.Background(), ns, "app=pg")
	require.NoError(t, err)
	assert.Equal(t, []models.VolumeClaim{{Name: "data-postgresql-0", StorageRequest: "20Gi"}}, pvcs)

	assert.Error(t, c.ResizePVC(context.Background(), ns, "absent", 20))
}
