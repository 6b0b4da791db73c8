/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package state

import (
	"context"
	"time"

	"go.etcd.io/bbolt"
	"sigs.k8s.io/yaml"

	"jinr.ru/greenlab/go-muse/pkg/device"
	"jinr.ru/greenlab/go-muse/pkg/log"
)

const (
	DevicesBucket = "devices"
	OpenTimeout   = time.Second
)

// DeviceRecord is the model selected for a headband with the given advertised name
type DeviceRecord struct {
	Name      string    `json:"name"`
	Model     string    `json:"model"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// State keeps device records in the bbolt database
type State struct {
	context.Context
	DB  *bbolt.DB
	now func() time.Time
}

func NewState(ctx context.Context, path string) (*State, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: OpenTimeout})
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(DevicesBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &State{
		Context: ctx,
		DB:      db,
		now:     time.Now,
	}, nil
}

// Close ...
func (s *State) Close() error {
	return s.DB.Close()
}

// SetModel ...
func (s *State) SetModel(name string, model device.Model) error {
	log.Debug("Setting model: device: %s model: %s", name, model)
	record := &DeviceRecord{
		Name:      name,
		Model:     model.String(),
		UpdatedAt: s.now().UTC(),
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(DevicesBucket))
		if b == nil {
			return ErrBucketNotFound{Name: DevicesBucket}
		}
		recordBytes, err := yaml.Marshal(record)
		if err != nil {
			return err
		}
		return b.Put([]byte(name), recordBytes)
	})
}

// GetRecord ...
func (s *State) GetRecord(name string) (*DeviceRecord, error) {
	log.Debug("Getting device record: device: %s", name)
	record := &DeviceRecord{}
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(DevicesBucket))
		if b == nil {
			return ErrBucketNotFound{Name: DevicesBucket}
		}
		recordBytes := b.Get([]byte(name))
		if recordBytes == nil {
			return ErrDeviceNotFound{Name: name}
		}
		return yaml.Unmarshal(recordBytes, record)
	}); err != nil {
		return nil, err
	}
	return record, nil
}

// GetModel returns the model stored for the device
func (s *State) GetModel(name string) (device.Model, error) {
	record, err := s.GetRecord(name)
	if err != nil {
		return device.ModelUnknown, err
	}
	return device.ParseModel(record.Model)
}

// Delete ...
func (s *State) Delete(name string) error {
	log.Debug("Deleting device record: device: %s", name)
	return s.DB.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(DevicesBucket))
		if b == nil {
			return ErrBucketNotFound{Name: DevicesBucket}
		}
		if b.Get([]byte(name)) == nil {
			return ErrDeviceNotFound{Name: name}
		}
		return b.Delete([]byte(name))
	})
}

// GetAll returns all records ordered by device name
func (s *State) GetAll() ([]*DeviceRecord, error) {
	log.Debug("Getting all device records")
	var records []*DeviceRecord
	if err := s.DB.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(DevicesBucket))
		if b == nil {
			return ErrBucketNotFound{Name: DevicesBucket}
		}
		return b.ForEach(func(k, v []byte) error {
			record := &DeviceRecord{}
			if err := yaml.Unmarshal(v, record); err != nil {
				log.Error("Error while unmarshalling device record %s: %s", k, err)
				return err
			}
			records = append(records, record)
			return nil
		})
	}); err != nil {
		return nil, err
	}
	return records, nil
}
