package commands

import (
	"fmt"
	"log"

	"github.com/Niranjjith/Attendance-System/internal/pkg/repository/postgresql"

	"github.com/pkg/errors"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('ADMIN', 'TEACHER', 'STUDENT');`,
	},
	{
		Index:       2,
		Description: "CREATE TYPE \"attendance_status\" AS ENUM",
		Query: `
        CREATE TYPE "attendance_status" AS ENUM ('present', 'absent', 'late');`,
	},
	{
		Index:       3,
		Description: "Create table: department",
		Query: `
        CREATE TABLE IF NOT EXISTS department (
            id serial primary key,
            name text not null,
            created_at timestamp default now(),
            created_by int,
            updated_at timestamp,
            updated_by int,
            deleted_at timestamp,
            deleted_by int
        );`,
	},
	{
		Index:       4,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            user_id text not null unique,
            full_name text not null,
            email text,
            password text not null,
            role user_role not null,
            batch text,
            semester int,
            register_number text unique,
            phone text,
            department_id int references department(id),
            is_active boolean default true,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       5,
		Description: "Create admin with user_id: admin, password: admin123",
		Query: `
        INSERT INTO users(user_id, full_name, role, password)
        SELECT 'admin', 'Administrator', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT user_id FROM users WHERE user_id = 'admin');
        `,
	},
	{
		Index:       6,
		Description: "Create table: subjects.",
		Query: `
        CREATE TABLE IF NOT EXISTS subjects (
            id serial primary key,
            code text not null unique,
            name text not null,
            description text,
            department_id int references department(id),
            semester int,
            teacher_id int references users(id),
            is_active boolean default true,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       7,
		Description: "Create table: subject_teachers.",
		Query: `
        CREATE TABLE IF NOT EXISTS subject_teachers (
            subject_id int not null references subjects(id),
            teacher_id int not null references users(id),
            created_at timestamp default now(),
            PRIMARY KEY (subject_id, teacher_id)
        );`,
	},
	{
		Index:       8,
		Description: "Create table: subject_students.",
		Query: `
        CREATE TABLE IF NOT EXISTS subject_students (
            subject_id int not null references subjects(id),
            student_id int not null references users(id),
            created_at timestamp default now(),
            PRIMARY KEY (subject_id, student_id)
        );`,
	},
	{
		Index:       9,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id SERIAL PRIMARY KEY,
            student_id INT NOT NULL REFERENCES users(id),
            subject_id INT NOT NULL REFERENCES subjects(id),
            date DATE NOT NULL,
            status attendance_status NOT NULL DEFAULT 'absent',
            marked_by INT NOT NULL REFERENCES users(id),
            hour TEXT,
            marked_at TIMESTAMP DEFAULT NOW(),
            is_locked BOOLEAN DEFAULT false,
            locked_at TIMESTAMP,
            changes JSONB NOT NULL DEFAULT '[]',
            created_at TIMESTAMP DEFAULT NOW(),
            created_by INT REFERENCES users(id),
            updated_at TIMESTAMP,
            updated_by INT REFERENCES users(id),
            deleted_at TIMESTAMP,
            deleted_by INT REFERENCES users(id),
            CONSTRAINT attendance_student_subject_date_key UNIQUE (student_id, subject_id, date)
        );`,
	},
	{
		Index:       10,
		Description: "Create indexes: attendance.",
		Query: `
        CREATE INDEX IF NOT EXISTS attendance_date_idx ON attendance (date);
        CREATE INDEX IF NOT EXISTS attendance_subject_idx ON attendance (subject_id);
        CREATE INDEX IF NOT EXISTS attendance_student_idx ON attendance (student_id);`,
	},
	{
		Index:       11,
		Description: "Create table: audit_logs.",
		Query: `
        CREATE TABLE IF NOT EXISTS audit_logs (
            id SERIAL PRIMARY KEY,
            action TEXT NOT NULL,
            entity TEXT NOT NULL,
            entity_id INT,
            performed_by INT REFERENCES users(id),
            details JSONB,
            ip_address TEXT,
            user_agent TEXT,
            created_at TIMESTAMP DEFAULT NOW()
        );`,
	},
	{
		Index:       12,
		Description: "Create indexes: audit_logs.",
		Query: `
        CREATE INDEX IF NOT EXISTS audit_logs_created_at_idx ON audit_logs (created_at DESC);
        CREATE INDEX IF NOT EXISTS audit_logs_performed_by_idx ON audit_logs (performed_by);
        CREATE INDEX IF NOT EXISTS audit_logs_entity_idx ON audit_logs (entity, entity_id);`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
