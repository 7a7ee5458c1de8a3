package config

import "testing"

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	if cfg.Storage.Driver != StorageDriverPostgres {
		t.Fatalf("storage driver = %q, want %q", cfg.Storage.Driver, StorageDriverPostgres)
	}
	if cfg.PubSub.Provider != "noop" {
		t.Fatalf("pubsub provider = %q, want noop", cfg.PubSub.Provider)
	}
	if cfg.Labels.BucketURL != defaultLabelBucketURL {
		t.Fatalf("labels bucket = %q, want %q", cfg.Labels.BucketURL, defaultLabelBucketURL)
	}
	if cfg.Shipment.TrackingIDAttempts != defaultTrackingIDAttempts {
		t.Fatalf("tracking id attempts = %d, want %d", cfg.Shipment.TrackingIDAttempts, defaultTrackingIDAttempts)
	}
	if cfg.Auth == nil {
		t.Fatal("auth section must be set")
	}
	if cfg.Worker.Port != defaultWorkerPort {
		t.Fatalf("worker port = %d, want %d", cfg.Worker.Port, defaultWorkerPort)
	}
}

func TestApplyDefaults_KeepsConfiguredValues(t *testing.T) {
	cfg := &Config{
		Storage:  &StorageConfig{Driver: StorageDriverMongo},
		Labels:   &LabelsConfig{BucketURL: "file:///tmp/labels", Size: 512},
		Shipment: &ShipmentConfig{TrackingIDAttempts: 2, BulkLimit: 10},
	}

	applyDefaults(cfg)

	if cfg.Storage.Driver != StorageDriverMongo {
		t.Fatalf("storage driver = %q, want mongo", cfg.Storage.Driver)
	}
	if cfg.Labels.BucketURL != "file:///tmp/labels" || cfg.Labels.Size != 512 {
		t.Fatalf("labels overwritten: %+v", cfg.Labels)
	}
	if cfg.Shipment.TrackingIDAttempts != 2 || cfg.Shipment.BulkLimit != 10 {
		t.Fatalf("shipment overwritten: %+v", cfg.Shipment)
	}
}
