package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mentorlane/api/internal/domain"
)

// Collection names.
const (
	collUsers          = "users"
	collMentorProfiles = "mentorprofiles"
	collMessages       = "messages"
	collBookings       = "bookings"
	collJournalNotes   = "journalnotes"
	collTasks          = "tasks"
)

// MongoStore implements Store using MongoDB.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to uri, checks the connection and ensures indexes on
// the named database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		collMessages: {
			{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "receiver", Value: 1}, {Key: "isRead", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		collBookings: {
			{Keys: bson.D{{Key: "mentor", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "student", Value: 1}, {Key: "status", Value: 1}}},
		},
		collJournalNotes: {
			{Keys: bson.D{{Key: "sessionId", Value: 1}}},
		},
		collTasks: {
			{Keys: bson.D{{Key: "mentorId", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "menteeId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
	for name, models := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping checks the database connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

type messageDoc struct {
	ID             objectRef  `bson:"_id"`
	Sender         objectRef  `bson:"sender"`
	Receiver       objectRef  `bson:"receiver"`
	Content        string     `bson:"content"`
	MessageType    string     `bson:"messageType"`
	IsRead         bool       `bson:"isRead"`
	ReadAt         *time.Time `bson:"readAt,omitempty"`
	RelatedBooking string     `bson:"relatedBooking,omitempty"`
	CreatedAt      time.Time  `bson:"createdAt"`
}

func (d messageDoc) toDomain() domain.Message {
	return domain.Message{
		MessageID:      string(d.ID),
		SenderID:       string(d.Sender),
		ReceiverID:     string(d.Receiver),
		Content:        d.Content,
		MessageType:    domain.MessageType(d.MessageType),
		IsRead:         d.IsRead,
		ReadAt:         d.ReadAt,
		RelatedBooking: d.RelatedBooking,
		CreatedAt:      d.CreatedAt,
	}
}

// CreateMessage creates a new message.
func (s *MongoStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	_, err := s.db.Collection(collMessages).InsertOne(ctx, messageDoc{
		ID:             objectRef(message.MessageID),
		Sender:         objectRef(message.SenderID),
		Receiver:       objectRef(message.ReceiverID),
		Content:        message.Content,
		MessageType:    string(message.MessageType),
		IsRead:         message.IsRead,
		ReadAt:         message.ReadAt,
		RelatedBooking: message.RelatedBooking,
		CreatedAt:      message.CreatedAt,
	})
	return err
}

// ListMessagesByParticipant retrieves every message userID sent or received,
// newest first.
func (s *MongoStore) ListMessagesByParticipant(ctx context.Context, userID string) ([]domain.Message, error) {
	filter := bson.M{"$or": bson.A{bson.M{"sender": objectRef(userID)}, bson.M{"receiver": objectRef(userID)}}}
	return s.findMessages(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

// ListPairMessages retrieves the messages exchanged between two users,
// oldest first.
func (s *MongoStore) ListPairMessages(ctx context.Context, userA, userB string, limit int) ([]domain.Message, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"sender": objectRef(userA), "receiver": objectRef(userB)},
		bson.M{"sender": objectRef(userB), "receiver": objectRef(userA)},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return s.findMessages(ctx, filter, opts)
}

func (s *MongoStore) findMessages(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]domain.Message, error) {
	cursor, err := s.db.Collection(collMessages).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []messageDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	messages := make([]domain.Message, 0, len(docs))
	for _, d := range docs {
		messages = append(messages, d.toDomain())
	}
	return messages, nil
}

// MarkMessagesRead marks every unread message from senderID to receiverID as
// read and returns how many changed.
func (s *MongoStore) MarkMessagesRead(ctx context.Context, receiverID, senderID string, at time.Time) (int64, error) {
	res, err := s.db.Collection(collMessages).UpdateMany(ctx,
		bson.M{"receiver": objectRef(receiverID), "sender": objectRef(senderID), "isRead": false},
		bson.M{"$set": bson.M{"isRead": true, "readAt": at}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

type userDoc struct {
	ID                objectRef `bson:"_id"`
	Role              string    `bson:"role"`
	Name              string    `bson:"name"`
	Email             string    `bson:"email"`
	Bio               string    `bson:"bio,omitempty"`
	ProfilePicture    string    `bson:"profilePicture,omitempty"`
	IsProfileComplete bool      `bson:"isProfileComplete"`
	KarmaPoints       int       `bson:"karmaPoints"`
	CreatedAt         time.Time `bson:"createdAt"`
	UpdatedAt         time.Time `bson:"updatedAt"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		UserID:            string(d.ID),
		Role:              domain.Role(d.Role),
		Name:              d.Name,
		Email:             d.Email,
		Bio:               d.Bio,
		ProfilePicture:    d.ProfilePicture,
		IsProfileComplete: d.IsProfileComplete,
		KarmaPoints:       d.KarmaPoints,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// UpsertUser creates or replaces a user profile. Karma points are kept when
// the user already exists.
func (s *MongoStore) UpsertUser(ctx context.Context, user *domain.User) error {
	update := bson.M{
		"$set": bson.M{
			"role":              string(user.Role),
			"name":              user.Name,
			"email":             user.Email,
			"bio":               user.Bio,
			"profilePicture":    user.ProfilePicture,
			"isProfileComplete": user.IsProfileComplete,
			"updatedAt":         user.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"karmaPoints": user.KarmaPoints,
			"createdAt":   user.CreatedAt,
		},
	}
	_, err := s.db.Collection(collUsers).UpdateOne(ctx, bson.M{"_id": objectRef(user.UserID)}, update,
		options.UpdateOne().SetUpsert(true))
	return err
}

// GetUser retrieves a user by ID.
func (s *MongoStore) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var doc userDoc
	err := s.db.Collection(collUsers).FindOne(ctx, bson.M{"_id": objectRef(userID)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := doc.toDomain()
	return &u, nil
}

// GetUsersByIDs retrieves the users with the given IDs, keyed by ID.
func (s *MongoStore) GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	users := make(map[string]domain.User)
	ids := objectRefs(userIDs)
	if len(ids) == 0 {
		return users, nil
	}
	cursor, err := s.db.Collection(collUsers).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		users[string(d.ID)] = d.toDomain()
	}
	return users, nil
}

// AddKarmaPoints adds points to a user's karma total. Unknown users are
// ignored.
func (s *MongoStore) AddKarmaPoints(ctx context.Context, userID string, points int) error {
	_, err := s.db.Collection(collUsers).UpdateOne(ctx, bson.M{"_id": objectRef(userID)},
		bson.M{"$inc": bson.M{"karmaPoints": points}})
	return err
}

type mentorProfileDoc struct {
	User           objectRef `bson:"user"`
	Headline       string    `bson:"headline,omitempty"`
	Bio            string    `bson:"bio,omitempty"`
	Company        string    `bson:"company,omitempty"`
	HourlyRate     float64   `bson:"hourlyRate,omitempty"`
	Skills         []string  `bson:"skills,omitempty"`
	ProfilePicture string    `bson:"profilePicture,omitempty"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

// UpsertMentorProfile creates or replaces a mentor profile.
func (s *MongoStore) UpsertMentorProfile(ctx context.Context, profile *domain.MentorProfile) error {
	_, err := s.db.Collection(collMentorProfiles).ReplaceOne(ctx, bson.M{"user": objectRef(profile.UserID)},
		mentorProfileDoc{
			User:           objectRef(profile.UserID),
			Headline:       profile.Headline,
			Bio:            profile.Bio,
			Company:        profile.Company,
			HourlyRate:     profile.HourlyRate,
			Skills:         profile.Skills,
			ProfilePicture: profile.ProfilePicture,
			CreatedAt:      profile.CreatedAt,
			UpdatedAt:      profile.UpdatedAt,
		},
		options.Replace().SetUpsert(true))
	return err
}

// GetMentorProfilesByUserIDs retrieves mentor profiles keyed by user ID.
func (s *MongoStore) GetMentorProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]domain.MentorProfile, error) {
	profiles := make(map[string]domain.MentorProfile)
	ids := objectRefs(userIDs)
	if len(ids) == 0 {
		return profiles, nil
	}
	cursor, err := s.db.Collection(collMentorProfiles).Find(ctx, bson.M{"user": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var docs []mentorProfileDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		profiles[string(d.User)] = domain.MentorProfile{
			UserID:         string(d.User),
			Headline:       d.Headline,
			Bio:            d.Bio,
			Company:        d.Company,
			HourlyRate:     d.HourlyRate,
			Skills:         d.Skills,
			ProfilePicture: d.ProfilePicture,
			CreatedAt:      d.CreatedAt,
			UpdatedAt:      d.UpdatedAt,
		}
	}
	return profiles, nil
}

type bookingDoc struct {
	ID           objectRef `bson:"_id"`
	Mentor       objectRef `bson:"mentor"`
	Student      objectRef `bson:"student"`
	SessionTitle string    `bson:"sessionTitle,omitempty"`
	SessionDate  time.Time `bson:"sessionDate"`
	SessionTime  string    `bson:"sessionTime,omitempty"`
	Duration     int       `bson:"duration,omitempty"`
	Status       string    `bson:"status"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func (d bookingDoc) toDomain() domain.Booking {
	return domain.Booking{
		BookingID:    string(d.ID),
		MentorID:     string(d.Mentor),
		StudentID:    string(d.Student),
		SessionTitle: d.SessionTitle,
		SessionDate:  d.SessionDate,
		SessionTime:  d.SessionTime,
		Duration:     d.Duration,
		Status:       d.Status,
		CreatedAt:    d.CreatedAt,
	}
}

// CreateBooking creates a new booking.
func (s *MongoStore) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	_, err := s.db.Collection(collBookings).InsertOne(ctx, bookingDoc{
		ID:           objectRef(booking.BookingID),
		Mentor:       objectRef(booking.MentorID),
		Student:      objectRef(booking.StudentID),
		SessionTitle: booking.SessionTitle,
		SessionDate:  booking.SessionDate,
		SessionTime:  booking.SessionTime,
		Duration:     booking.Duration,
		Status:       booking.Status,
		CreatedAt:    booking.CreatedAt,
	})
	return err
}

// GetBooking retrieves a booking by ID.
func (s *MongoStore) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var doc bookingDoc
	err := s.db.Collection(collBookings).FindOne(ctx, bson.M{"_id": objectRef(bookingID)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	b := doc.toDomain()
	return &b, nil
}

// ListBookingsByParty lists the bookings where userID is the given party,
// restricted to statuses when non-empty, most recent session first.
func (s *MongoStore) ListBookingsByParty(ctx context.Context, party domain.Role, userID string, statuses []string) ([]domain.Booking, error) {
	field := "student"
	if party == domain.RoleMentor {
		field = "mentor"
	}
	filter := bson.M{field: objectRef(userID)}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}

	cursor, err := s.db.Collection(collBookings).Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "sessionDate", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []bookingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	bookings := make([]domain.Booking, 0, len(docs))
	for _, d := range docs {
		bookings = append(bookings, d.toDomain())
	}
	return bookings, nil
}

type journalNoteDoc struct {
	SessionID    objectRef `bson:"sessionId"`
	MentorID     objectRef `bson:"mentorId"`
	StudentID    objectRef `bson:"studentId"`
	MentorNotes  string    `bson:"mentorNotes,omitempty"`
	StudentNotes string    `bson:"studentNotes,omitempty"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// UpsertJournalNotes writes one party's side of a session's notes. The other
// side is left untouched and createdAt is only set on insert.
func (s *MongoStore) UpsertJournalNotes(ctx context.Context, note *domain.JournalNote, side domain.Role) error {
	set := bson.M{
		"sessionId": objectRef(note.SessionID),
		"mentorId":  objectRef(note.MentorID),
		"studentId": objectRef(note.StudentID),
		"updatedAt": note.UpdatedAt,
	}
	if side == domain.RoleMentor {
		set["mentorNotes"] = note.MentorNotes
	} else {
		set["studentNotes"] = note.StudentNotes
	}
	_, err := s.db.Collection(collJournalNotes).UpdateOne(ctx, bson.M{"sessionId": objectRef(note.SessionID)},
		bson.M{"$set": set, "$setOnInsert": bson.M{"createdAt": note.CreatedAt, "savedAt": note.CreatedAt}},
		options.UpdateOne().SetUpsert(true))
	return err
}

// GetJournalNote retrieves the notes of a session.
func (s *MongoStore) GetJournalNote(ctx context.Context, sessionID string) (*domain.JournalNote, error) {
	var doc journalNoteDoc
	err := s.db.Collection(collJournalNotes).FindOne(ctx, bson.M{"sessionId": objectRef(sessionID)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.JournalNote{
		SessionID:    string(doc.SessionID),
		MentorID:     string(doc.MentorID),
		StudentID:    string(doc.StudentID),
		MentorNotes:  doc.MentorNotes,
		StudentNotes: doc.StudentNotes,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

type taskDoc struct {
	ID                string     `bson:"_id"`
	Title             string     `bson:"title"`
	Description       string     `bson:"description,omitempty"`
	Instructions      string     `bson:"instructions,omitempty"`
	Category          string     `bson:"category,omitempty"`
	Priority          string     `bson:"priority,omitempty"`
	DueDate           *time.Time `bson:"dueDate,omitempty"`
	EstimatedTime     string     `bson:"estimatedTime,omitempty"`
	Resources         string     `bson:"resources,omitempty"`
	NotifyMentee      bool       `bson:"notifyMentee"`
	RequireSubmission bool       `bson:"requireSubmission"`
	Status            string     `bson:"status"`
	MentorID          string     `bson:"mentorId"`
	MenteeID          string     `bson:"menteeId,omitempty"`
	MenteeName        string     `bson:"menteeName,omitempty"`
	Attachments       []string   `bson:"attachments,omitempty"`
	Submission        string     `bson:"submission,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt"`
}

func newTaskDoc(t *domain.Task) taskDoc {
	return taskDoc{
		ID:                t.TaskID,
		Title:             t.Title,
		Description:       t.Description,
		Instructions:      t.Instructions,
		Category:          t.Category,
		Priority:          t.Priority,
		DueDate:           t.DueDate,
		EstimatedTime:     t.EstimatedTime,
		Resources:         t.Resources,
		NotifyMentee:      t.NotifyMentee,
		RequireSubmission: t.RequireSubmission,
		Status:            string(t.Status),
		MentorID:          t.MentorID,
		MenteeID:          t.MenteeID,
		MenteeName:        t.MenteeName,
		Attachments:       t.Attachments,
		Submission:        string(t.Submission),
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func (d taskDoc) toDomain() domain.Task {
	t := domain.Task{
		TaskID:            d.ID,
		Title:             d.Title,
		Description:       d.Description,
		Instructions:      d.Instructions,
		Category:          d.Category,
		Priority:          d.Priority,
		DueDate:           d.DueDate,
		EstimatedTime:     d.EstimatedTime,
		Resources:         d.Resources,
		NotifyMentee:      d.NotifyMentee,
		RequireSubmission: d.RequireSubmission,
		Status:            domain.TaskStatus(d.Status),
		MentorID:          d.MentorID,
		MenteeID:          d.MenteeID,
		MenteeName:        d.MenteeName,
		Attachments:       d.Attachments,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.Submission != "" {
		t.Submission = json.RawMessage(d.Submission)
	}
	return t
}

// CreateTask creates a new task.
func (s *MongoStore) CreateTask(ctx context.Context, task *domain.Task) error {
	_, err := s.db.Collection(collTasks).InsertOne(ctx, newTaskDoc(task))
	return err
}

// GetTask retrieves a task by ID.
func (s *MongoStore) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	var doc taskDoc
	err := s.db.Collection(collTasks).FindOne(ctx, bson.M{"_id": taskID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := doc.toDomain()
	return &t, nil
}

// UpdateTask replaces the stored task.
func (s *MongoStore) UpdateTask(ctx context.Context, task *domain.Task) error {
	_, err := s.db.Collection(collTasks).ReplaceOne(ctx, bson.M{"_id": task.TaskID}, newTaskDoc(task))
	return err
}

// DeleteTask deletes a task and reports whether it existed.
func (s *MongoStore) DeleteTask(ctx context.Context, taskID string) (bool, error) {
	res, err := s.db.Collection(collTasks).DeleteOne(ctx, bson.M{"_id": taskID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// ListTasks lists tasks matching filter, newest first.
func (s *MongoStore) ListTasks(ctx context.Context, filter TaskFilter) ([]domain.Task, error) {
	q := bson.M{}
	if filter.MentorID != "" {
		q["mentorId"] = filter.MentorID
	}
	if filter.MenteeID != "" {
		q["menteeId"] = filter.MenteeID
	}
	if filter.Status != "" {
		q["status"] = string(filter.Status)
	}

	cursor, err := s.db.Collection(collTasks).Find(ctx, q,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	tasks := make([]domain.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toDomain())
	}
	return tasks, nil
}

// objectRef is a document id as the rest of the application sees it. Ids that
// are 24-character hex strings are stored as ObjectIds, matching documents
// written by other services sharing the database; any other id is stored as
// a plain string.
type objectRef string

// MarshalBSONValue implements bson.ValueMarshaler.
func (r objectRef) MarshalBSONValue() (byte, []byte, error) {
	if oid, err := bson.ObjectIDFromHex(string(r)); err == nil {
		t, data, err := bson.MarshalValue(oid)
		return byte(t), data, err
	}
	t, data, err := bson.MarshalValue(string(r))
	return byte(t), data, err
}

// UnmarshalBSONValue implements bson.ValueUnmarshaler.
func (r *objectRef) UnmarshalBSONValue(typ byte, data []byte) error {
	raw := bson.RawValue{Type: bson.Type(typ), Value: data}
	switch raw.Type {
	case bson.TypeObjectID:
		oid, ok := raw.ObjectIDOK()
		if !ok {
			return errors.New("malformed ObjectId")
		}
		*r = objectRef(oid.Hex())
	case bson.TypeString:
		str, ok := raw.StringValueOK()
		if !ok {
			return errors.New("malformed string id")
		}
		*r = objectRef(str)
	case bson.TypeNull, bson.TypeUndefined:
		*r = ""
	default:
		return fmt.Errorf("cannot decode %s into an id", raw.Type)
	}
	return nil
}

// objectRefs converts ids for an $in query, skipping empty and repeated ids.
func objectRefs(values []string) []objectRef {
	seen := make(map[string]struct{}, len(values))
	out := make([]objectRef, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, objectRef(v))
	}
	return out
}
