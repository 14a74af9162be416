package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"launchlist/entity"
	"launchlist/internal/config"
)

const (
	collectionUsers       = "users"
	collectionSettings    = "settings"
	collectionSubmissions = "submissions"

	keyWaitlistState = "waitlist_state"
	keySiteMode      = "site_mode"
)

type MongoDB struct {
	ctx           context.Context
	clientOptions *options.ClientOptions
	database      string
}

func NewMongoClient(conf *config.Config) *MongoDB {
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}
	client := &MongoDB{
		ctx:           context.Background(),
		clientOptions: clientOptions,
		database:      conf.Mongo.Database,
	}
	return client
}

func (m *MongoDB) connect() (*mongo.Client, error) {
	connection, err := mongo.Connect(m.ctx, m.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	return connection, nil
}

func (m *MongoDB) disconnect(connection *mongo.Client) {
	_ = connection.Disconnect(m.ctx)
}

// EnsureIndexes creates the unique email index the duplicate check relies on.
// Called once on startup.
func (m *MongoDB) EnsureIndexes() error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSubmissions)
	_, err = collection.Indexes().CreateOne(m.ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

func (m *MongoDB) GetUser(token string) (*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionUsers)
	filter := bson.D{{Key: "token", Value: token}}
	var user entity.User
	err = collection.FindOne(m.ctx, filter).Decode(&user)
	return &user, err
}

func (m *MongoDB) GetTelegramUsers() ([]*entity.User, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionUsers)
	filter := bson.D{{Key: "telegram_id", Value: bson.D{{Key: "$gt", Value: 0}}}}
	cursor, err := collection.Find(m.ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(m.ctx)

	var users []*entity.User
	err = cursor.All(m.ctx, &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (m *MongoDB) SetTelegramEnabled(id int64, isActive bool, logLevel int) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)
	collection := connection.Database(m.database).Collection(collectionUsers)
	filter := bson.D{{Key: "telegram_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "telegram_enabled", Value: isActive},
		{Key: "log_level", Value: logLevel},
	}}}
	_, err = collection.UpdateOne(m.ctx, filter, update)
	return err
}

// GetWaitlistState returns the persisted counter state, or nil when the
// counter has never been initialized.
func (m *MongoDB) GetWaitlistState() (*entity.WaitlistState, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSettings)
	filter := bson.D{{Key: "key", Value: keyWaitlistState}}
	var state entity.WaitlistState
	err = collection.FindOne(m.ctx, filter).Decode(&state)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb find: %w", err)
	}
	return &state, nil
}

// InitWaitlistState writes the initial counter state. $setOnInsert keeps the
// start date immutable when two first reads race.
func (m *MongoDB) InitWaitlistState(state *entity.WaitlistState) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSettings)
	filter := bson.D{{Key: "key", Value: keyWaitlistState}}
	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "start_date", Value: state.StartDate},
		{Key: "actual_registrations", Value: state.ActualRegistrations},
	}}}
	opts := options.Update().SetUpsert(true)
	_, err = collection.UpdateOne(m.ctx, filter, update, opts)
	return err
}

func (m *MongoDB) IncrementRegistrations() error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSettings)
	filter := bson.D{{Key: "key", Value: keyWaitlistState}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "actual_registrations", Value: 1}}}}
	_, err = collection.UpdateOne(m.ctx, filter, update)
	return err
}

// GetSiteMode returns the persisted mode record, or nil when it was never set.
func (m *MongoDB) GetSiteMode() (*entity.SiteMode, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSettings)
	filter := bson.D{{Key: "key", Value: keySiteMode}}
	var mode entity.SiteMode
	err = collection.FindOne(m.ctx, filter).Decode(&mode)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb find: %w", err)
	}
	return &mode, nil
}

func (m *MongoDB) SaveSiteMode(mode *entity.SiteMode) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSettings)
	filter := bson.D{{Key: "key", Value: keySiteMode}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "mode", Value: mode.Mode},
		{Key: "updated_by", Value: mode.UpdatedBy},
		{Key: "updated_at", Value: mode.UpdatedAt},
	}}}
	opts := options.Update().SetUpsert(true)
	_, err = collection.UpdateOne(m.ctx, filter, update, opts)
	return err
}

// InsertSubmission stores a new signup. A collision with the unique email
// index comes back as entity.ErrDuplicateEmail so handlers can answer 409
// instead of 500.
func (m *MongoDB) InsertSubmission(sub *entity.Submission) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSubmissions)
	_, err = collection.InsertOne(m.ctx, sub)
	if mongo.IsDuplicateKeyError(err) {
		return entity.ErrDuplicateEmail
	}
	return err
}

func (m *MongoDB) Submissions() ([]*entity.Submission, error) {
	return m.findSubmissions(bson.D{})
}

func (m *MongoDB) SubmissionsUnnotified() ([]*entity.Submission, error) {
	return m.findSubmissions(bson.D{{Key: "notified", Value: false}})
}

func (m *MongoDB) SubmissionsUnprovisioned() ([]*entity.Submission, error) {
	return m.findSubmissions(bson.D{{Key: "account_created", Value: false}})
}

func (m *MongoDB) findSubmissions(filter bson.D) ([]*entity.Submission, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSubmissions)
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := collection.Find(m.ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(m.ctx)

	var submissions []*entity.Submission
	err = cursor.All(m.ctx, &submissions)
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (m *MongoDB) MarkNotified(id string, at time.Time) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSubmissions)
	filter := bson.D{{Key: "id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "notified", Value: true},
		{Key: "notified_at", Value: at},
	}}}
	_, err = collection.UpdateOne(m.ctx, filter, update)
	return err
}

func (m *MongoDB) MarkAccountCreated(id string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(collectionSubmissions)
	filter := bson.D{{Key: "id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "account_created", Value: true}}}}
	_, err = collection.UpdateOne(m.ctx, filter, update)
	return err
}
